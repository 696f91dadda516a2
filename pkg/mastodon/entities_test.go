package mastodon

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	serr "github.com/dunkyl/slymastodon/pkg/err"
	"github.com/dunkyl/slymastodon/pkg/value"
)

const userJSON = `{
	"id": "109246444697689519",
	"username": "dunkyl",
	"acct": "dunkyl",
	"display_name": "Dunkyl",
	"locked": false,
	"bot": false,
	"created_at": "2022-10-27T00:00:00.000Z",
	"discoverable": true,
	"note": "<p>makes things</p>",
	"url": "https://mastodon.skye.vg/@dunkyl",
	"avatar": "https://mastodon.skye.vg/avatars/original/missing.png",
	"avatar_static": "https://mastodon.skye.vg/avatars/original/missing.png",
	"header": "https://mastodon.skye.vg/headers/original/missing.png",
	"header_static": "https://mastodon.skye.vg/headers/original/missing.png",
	"followers_count": 2,
	"following_count": 2,
	"statuses_count": 9,
	"last_status_at": "2023-03-03",
	"emojis": [],
	"fields": [
		{"name": "Website", "value": "dunkyl.net", "verified_at": "2023-03-01T12:00:00.000Z"}
	]
}`

func postJSON(extra string) string {
	return fmt.Sprintf(`{
	"id": "109958407645239686",
	"created_at": "2023-03-03T08:29:10.291Z",
	"account": %s,
	"content": "<p>hi</p>",
	"visibility": "public",
	"sensitive": false,
	"spoiler_text": "",
	"media_attachments": [],
	"application": {"name": "SlyMastodon"},
	"mentions": [],
	"tags": [{"name": "go", "url": "https://mastodon.skye.vg/tags/go"}],
	"emojis": [],
	"reblogs_count": 0,
	"favourites_count": 1,
	"replies_count": 0,
	"url": "https://mastodon.skye.vg/@dunkyl/109958407645239686",
	"in_reply_to_id": null,
	"in_reply_to_account_id": null,
	"poll": null,
	"card": null,
	"language": "en",
	"edited_at": null%s
}`, userJSON, extra)
}

func TestDecodeUser(t *testing.T) {
	t.Parallel()

	user, err := DecodeUser([]byte(userJSON))
	require.NoError(t, err)
	require.Equal(t, "User", user.Name())

	id, ok := user.Field("id")
	require.True(t, ok)
	require.True(t, id.Equal(value.NewString("109246444697689519")))

	// last_status_at arrives in date-only form but still decodes to an
	// instant.
	last, ok := user.Field("last_status_at")
	require.True(t, ok)
	require.Equal(t, value.ValueTime, last.Kind())

	fields, ok := user.Field("fields")
	require.True(t, ok)
	items, _ := fields.Items()
	require.Len(t, items, 1)
	require.Equal(t, "UserField", items[0].Name())
}

func TestDecodePost(t *testing.T) {
	t.Parallel()

	post, err := DecodePost([]byte(postJSON(`, "reblog": null`)))
	require.NoError(t, err)
	require.Equal(t, "Post", post.Name())

	vis, _ := post.Field("visibility")
	member, ok := vis.EnumMember()
	require.True(t, ok)
	require.Equal(t, "PUBLIC", member)

	account, _ := post.Field("account")
	require.Equal(t, "User", account.Name())

	reblog, _ := post.Field("reblog")
	require.True(t, reblog.IsNull())

	// The application field resolves by name through the catalog, to the
	// hooked shape: the payload omits website entirely.
	app, _ := post.Field("application")
	require.Equal(t, "Application", app.Name())
	website, ok := app.Field("website")
	require.True(t, ok)
	require.True(t, website.IsNull())

	lang, _ := post.Field("language")
	require.True(t, lang.Equal(value.NewString("en")))
}

func TestDecodePostWithReblog(t *testing.T) {
	t.Parallel()

	// The reblog field references Post by name; the embedded payload decodes
	// against the full Post shape through the catalog.
	inner := postJSON(`, "reblog": null`)
	raw := postJSON(fmt.Sprintf(`, "reblog": %s`, inner))

	post, err := DecodePost([]byte(raw))
	require.NoError(t, err)

	reblog, ok := post.Field("reblog")
	require.True(t, ok)
	require.Equal(t, "Post", reblog.Name())

	nested, ok := reblog.Field("reblog")
	require.True(t, ok)
	require.True(t, nested.IsNull())
}

func TestDecodePostMissingField(t *testing.T) {
	t.Parallel()

	_, err := DecodePost([]byte(`{"id": "1"}`))
	require.ErrorIs(t, err, serr.ErrMissingField)
}

func TestApplicationHookSuppliesAbsentWebsite(t *testing.T) {
	t.Parallel()

	app, err := DecodeEntity("Application", []byte(`{"name": "SlyMastodon"}`))
	require.NoError(t, err)

	website, ok := app.Field("website")
	require.True(t, ok, "an absent website key decodes as null")
	require.True(t, website.IsNull())

	app, err = DecodeEntity("Application",
		[]byte(`{"name": "SlyMastodon", "website": "https://dunkyl.net"}`))
	require.NoError(t, err)
	website, _ = app.Field("website")
	require.True(t, website.Equal(value.NewString("https://dunkyl.net")))
}

func TestDecodeDeletedPost(t *testing.T) {
	t.Parallel()

	// A deletion payload is a post without rendered content.
	raw := postJSON(`, "reblog": null, "text": "hi"`)
	deleted, err := DecodeEntity("DeletedPost", []byte(raw))
	require.NoError(t, err)
	require.Equal(t, "DeletedPost", deleted.Name())
	_, ok := deleted.Field("content")
	require.False(t, ok)
}

func TestDecodeMediaAttachment(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "22345792",
		"type": "image",
		"url": "https://files.example/original.png",
		"preview_url": "https://files.example/small.png",
		"remote_url": null,
		"meta": {
			"original": {"width": 640, "height": 480, "size": "640x480", "aspect": 1.3333333333333333},
			"focus": {"x": 0.0, "y": 0.0}
		},
		"description": "a picture",
		"blurhash": "UFBWY:8_0Jxv4mx]t8t64.%M-:IUWGWAt6M}"
	}`
	att, err := DecodeEntity("MediaAttachment", []byte(raw))
	require.NoError(t, err)

	typ, _ := att.Field("type")
	member, _ := typ.EnumMember()
	require.Equal(t, "IMAGE", member)

	meta, _ := att.Field("meta")
	entries, ok := meta.Object()
	require.True(t, ok, "meta stays an open map of arbitrary JSON")
	require.Contains(t, entries, "original")
}

func TestDecodeEntityUnknownName(t *testing.T) {
	t.Parallel()

	_, err := DecodeEntity("Nope", []byte(`{}`))
	require.ErrorIs(t, err, serr.ErrUnresolvedSymbol)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"Privacy", "PrivacyDirect", "MediaType", "PreviewType",
		"Emoji", "UserField", "User", "Role",
		"MediaAttachment", "UnuploadedMediaAttachment", "Application",
		"StatusMention", "StatusTag", "PollOption", "Poll",
		"PreviewCard", "Post", "DeletedPost",
	} {
		s, ok := Lookup(name)
		require.True(t, ok, "entity %s must be registered", name)
		require.NotNil(t, s)
	}
	_, ok := Lookup("Status")
	require.False(t, ok)
}

func TestDecodeEntityMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := DecodeEntity("User", []byte(`{`))
	require.Error(t, err)
	require.False(t, errors.Is(err, serr.ErrTypeMismatch))
}
