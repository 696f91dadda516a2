// Package mastodon declares shape descriptors for the Mastodon public API
// entities (https://docs.joinmastodon.org/entities/) and typed decode
// helpers over raw JSON payloads. How the payloads are obtained (transport,
// authentication, rate limits) is the caller's concern.
package mastodon

import (
	"github.com/dunkyl/slymastodon/pkg/decode"
	serr "github.com/dunkyl/slymastodon/pkg/err"
	"github.com/dunkyl/slymastodon/pkg/shape"
	"github.com/dunkyl/slymastodon/pkg/value"
)

// Enumerations.
var (
	// Privacy is the visibility of a post.
	Privacy = shape.NewEnum("Privacy",
		shape.StrMember("PUBLIC", "public"),
		shape.StrMember("UNLISTED", "unlisted"),
		shape.StrMember("PRIVATE", "private"),
	)

	// PrivacyDirect extends Privacy with direct-message visibility.
	PrivacyDirect = shape.NewEnum("PrivacyDirect",
		shape.StrMember("PUBLIC", "public"),
		shape.StrMember("UNLISTED", "unlisted"),
		shape.StrMember("PRIVATE", "private"),
		shape.StrMember("DIRECT", "direct"),
	)

	// MediaType classifies a media attachment.
	MediaType = shape.NewEnum("MediaType",
		shape.StrMember("IMAGE", "image"),
		shape.StrMember("GIFV", "gifv"),
		shape.StrMember("VIDEO", "video"),
		shape.StrMember("AUDIO", "audio"),
		shape.StrMember("UNKNOWN", "unknown"),
	)

	// PreviewType classifies a preview card.
	PreviewType = shape.NewEnum("PreviewType",
		shape.StrMember("LINK", "link"),
		shape.StrMember("PHOTO", "photo"),
		shape.StrMember("VIDEO", "video"),
		shape.StrMember("RICH", "rich"),
	)
)

// Entity records. Field lists follow the documented entities; every field is
// required, and nullable fields are unions with null.
var (
	// Emoji is a custom emoji (entities/CustomEmoji).
	Emoji = shape.NewRecord("Emoji",
		shape.F("shortcode", shape.NewString()),
		shape.F("url", shape.NewString()),
		shape.F("static_url", shape.NewString()),
		shape.F("visible_in_picker", shape.NewBool()),
		shape.F("category", shape.NewString()),
	)

	// UserField is a profile metadata field (entities/Account#Field).
	UserField = shape.NewRecord("UserField",
		shape.F("name", shape.NewString()),
		shape.F("value", shape.NewString()),
		shape.F("verified_at", shape.NewDateTime()),
	)

	// User is an account (entities/Account).
	User = shape.NewRecord("User",
		shape.F("id", shape.NewString()),
		shape.F("username", shape.NewString()),
		shape.F("acct", shape.NewString()),
		shape.F("display_name", shape.NewString()),
		shape.F("locked", shape.NewBool()),
		shape.F("bot", shape.NewBool()),
		shape.F("created_at", shape.NewDateTime()),
		shape.F("discoverable", shape.NewBool()),
		shape.F("note", shape.NewString()),
		shape.F("url", shape.NewString()),
		shape.F("avatar", shape.NewString()),
		shape.F("avatar_static", shape.NewString()),
		shape.F("header", shape.NewString()),
		shape.F("header_static", shape.NewString()),
		shape.F("followers_count", shape.NewInt()),
		shape.F("following_count", shape.NewInt()),
		shape.F("statuses_count", shape.NewInt()),
		shape.F("last_status_at", shape.NewDateTime()),
		shape.F("emojis", shape.NewList(Emoji)),
		shape.F("fields", shape.NewList(UserField)),
	)

	// Role is a moderation role (entities/Role).
	Role = shape.NewRecord("Role",
		shape.F("id", shape.NewString()),
		shape.F("name", shape.NewString()),
		shape.F("color", shape.NewString()),
		shape.F("position", shape.NewInt()),
		shape.F("permissions", shape.NewInt()),
		shape.F("highlighted", shape.NewBool()),
		shape.F("created_at", shape.NewString()),
		shape.F("updated_at", shape.NewString()),
	)

	// MediaAttachment is uploaded media (entities/MediaAttachment).
	MediaAttachment = shape.NewRecord("MediaAttachment",
		shape.F("id", shape.NewString()),
		shape.F("type", MediaType),
		shape.F("preview_url", shape.NewString()),
		shape.F("remote_url", shape.Optional(shape.NewString())),
		shape.F("meta", shape.NewMap(shape.JSON())),
		shape.F("description", shape.NewString()),
		shape.F("blurhash", shape.NewString()),
		shape.F("url", shape.NewString()),
	)

	// UnuploadedMediaAttachment is media whose processing has not finished;
	// its url is still null.
	UnuploadedMediaAttachment = shape.NewRecord("UnuploadedMediaAttachment",
		shape.F("id", shape.NewString()),
		shape.F("type", MediaType),
		shape.F("preview_url", shape.NewString()),
		shape.F("remote_url", shape.Optional(shape.NewString())),
		shape.F("meta", shape.NewMap(shape.JSON())),
		shape.F("description", shape.NewString()),
		shape.F("blurhash", shape.NewString()),
		shape.F("url", shape.Optional(shape.NewString())),
	)

	// StatusMention is a mention of a user within post content
	// (entities/Status#Mention).
	StatusMention = shape.NewRecord("StatusMention",
		shape.F("id", shape.NewString()),
		shape.F("username", shape.NewString()),
		shape.F("url", shape.NewString()),
		shape.F("acct", shape.NewString()),
	)

	// StatusTag is a hashtag used within post content
	// (entities/Status#Tag).
	StatusTag = shape.NewRecord("StatusTag",
		shape.F("name", shape.NewString()),
		shape.F("url", shape.NewString()),
	)

	// PollOption is one answer of a poll (entities/Poll#Option).
	PollOption = shape.NewRecord("PollOption",
		shape.F("title", shape.NewString()),
		shape.F("votes_count", shape.NewInt()),
	)

	// Poll is a poll attached to a post (entities/Poll).
	Poll = shape.NewRecord("Poll",
		shape.F("id", shape.NewString()),
		shape.F("expires_at", shape.NewDateTime()),
		shape.F("expired", shape.NewBool()),
		shape.F("multiple", shape.NewBool()),
		shape.F("votes_count", shape.NewInt()),
		shape.F("options", shape.NewList(PollOption)),
		shape.F("voted", shape.Optional(shape.NewBool())),
		shape.F("own_votes", shape.Optional(shape.NewList(shape.NewInt()))),
	)

	// PreviewCard is a rich preview card generated from OpenGraph tags
	// (entities/PreviewCard).
	PreviewCard = shape.NewRecord("PreviewCard",
		shape.F("url", shape.NewString()),
		shape.F("title", shape.NewString()),
		shape.F("description", shape.NewString()),
		shape.F("type", PreviewType),
		shape.F("author_name", shape.NewString()),
		shape.F("author_url", shape.NewString()),
		shape.F("provider_name", shape.NewString()),
		shape.F("provider_url", shape.NewString()),
		shape.F("height", shape.NewInt()),
		shape.F("image", shape.Optional(shape.NewString())),
		shape.F("embed_url", shape.NewString()),
		shape.F("blurhash", shape.Optional(shape.NewString())),
	)

	// Post is a post, toot, tweet, or status (entities/Status). Its reblog
	// field is a delayed self-reference: a post may embed the post it
	// boosts.
	Post = shape.NewRecord("Post", append(postBaseFields(),
		shape.F("content", shape.NewString()))...)

	// DeletedPost is a post payload returned after deletion; identical to
	// Post except the rendered content is gone.
	DeletedPost = shape.NewRecord("DeletedPost", postBaseFields()...)
)

// postBaseFields returns the fields shared by Post and DeletedPost. The
// reblog and application references are symbolic and resolve through the
// catalog scope: reblog because a post may embed another post, application
// because the Application shape is finished during package init.
func postBaseFields() []shape.Field {
	return []shape.Field{
		shape.F("id", shape.NewString()),
		shape.F("created_at", shape.NewString()),
		shape.F("account", User),
		shape.F("visibility", PrivacyDirect),
		shape.F("sensitive", shape.NewBool()),
		shape.F("spoiler_text", shape.NewString()),
		shape.F("media_attachments", shape.NewList(MediaAttachment)),
		shape.F("application", shape.Optional(shape.NewRef("Application"))),
		shape.F("mentions", shape.NewList(StatusMention)),
		shape.F("tags", shape.NewList(StatusTag)),
		shape.F("emojis", shape.NewList(Emoji)),
		shape.F("reblogs_count", shape.NewInt()),
		shape.F("favourites_count", shape.NewInt()),
		shape.F("replies_count", shape.NewInt()),
		shape.F("url", shape.Optional(shape.NewString())),
		shape.F("in_reply_to_id", shape.Optional(shape.NewString())),
		shape.F("in_reply_to_account_id", shape.Optional(shape.NewString())),
		shape.F("reblog", shape.Optional(shape.NewRef("Post"))),
		shape.F("poll", shape.Optional(Poll)),
		shape.F("card", shape.Optional(PreviewCard)),
		shape.F("language", shape.Optional(shape.NewString())),
		shape.F("edited_at", shape.Optional(shape.NewString())),
	}
}

// application is the structural shape behind Application; the exported shape
// carries the decode hook.
var application = shape.NewRecord("Application",
	shape.F("name", shape.NewString()),
	shape.F("website", shape.Optional(shape.NewString())),
)

// Application identifies the client application that published a post
// (entities/Application). Some servers omit the website key entirely rather
// than sending null, so the record registers a decode hook that normalizes
// the payload before structural decoding. The hook closes over the catalog,
// so both are assigned in init rather than in a var initializer.
var Application *shape.Shape

// catalog is the defining context of every entity type; delayed references
// like Post's reblog resolve against it.
var catalog *shape.Scope

func init() {
	Application = application.WithHook(applicationFromJSON)
	catalog = buildCatalog()
}

func applicationFromJSON(v value.Value) (value.Value, error) {
	entries, ok := v.Object()
	if !ok {
		return value.Value{}, decode.NewError(v, Application,
			serr.ErrKindMismatch("object", string(v.Kind())))
	}
	if _, present := entries["website"]; !present {
		entries["website"] = value.NewNull()
	}
	return decode.DecodeIn(application, value.NewObject(entries), shape.NewEnv(), Catalog())
}

func buildCatalog() *shape.Scope {
	sc := shape.NewScope(nil)
	for name, s := range map[string]*shape.Shape{
		"Privacy":                   Privacy,
		"PrivacyDirect":             PrivacyDirect,
		"MediaType":                 MediaType,
		"PreviewType":               PreviewType,
		"Emoji":                     Emoji,
		"UserField":                 UserField,
		"User":                      User,
		"Role":                      Role,
		"MediaAttachment":           MediaAttachment,
		"UnuploadedMediaAttachment": UnuploadedMediaAttachment,
		"Application":               Application,
		"StatusMention":             StatusMention,
		"StatusTag":                 StatusTag,
		"PollOption":                PollOption,
		"Poll":                      Poll,
		"PreviewCard":               PreviewCard,
		"Post":                      Post,
		"DeletedPost":               DeletedPost,
	} {
		sc.Define(name, s)
	}
	// Records whose fields use symbolic references carry the catalog as
	// their defining context.
	Post.Defs = sc
	DeletedPost.Defs = sc
	return sc
}

// Catalog returns the scope holding every entity type by name.
func Catalog() *shape.Scope {
	return catalog
}

// Lookup resolves an entity type name against the catalog.
func Lookup(name string) (*shape.Shape, bool) {
	return catalog.Lookup(name)
}

// DecodeEntity decodes a raw JSON payload against a named entity type.
//
// Parameters:
//
//	name string: The entity type name, e.g. "Post".
//	raw []byte: The raw JSON payload.
//
// Returns:
//
//	value.Value: The typed entity value.
//	error: serr.ErrUnresolvedSymbol for unknown names, otherwise any decode
//	       failure.
func DecodeEntity(name string, raw []byte) (value.Value, error) {
	s, ok := Lookup(name)
	if !ok {
		return value.Value{}, serr.ErrUnresolvedRef(name)
	}
	return decodeShape(s, raw)
}

// DecodeUser decodes an account payload.
func DecodeUser(raw []byte) (value.Value, error) {
	return decodeShape(User, raw)
}

// DecodePost decodes a status payload.
func DecodePost(raw []byte) (value.Value, error) {
	return decodeShape(Post, raw)
}

func decodeShape(s *shape.Shape, raw []byte) (value.Value, error) {
	v, err := value.FromJSON(raw)
	if err != nil {
		return value.Value{}, err
	}
	return decode.DecodeIn(s, v, shape.NewEnv(), catalog)
}
