package value

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromJSONNumberKinds(t *testing.T) {
	t.Parallel()

	v, err := FromJSON([]byte(`[1, 1.0, 2.5, 1e3, -4]`))
	require.NoError(t, err)

	items, ok := v.Items()
	require.True(t, ok)
	require.Len(t, items, 5)

	require.Equal(t, ValueInt, items[0].Kind(), "1 is an int")
	require.Equal(t, ValueFloat, items[1].Kind(), "1.0 is a float by lexical form")
	require.Equal(t, ValueFloat, items[2].Kind())
	require.Equal(t, ValueFloat, items[3].Kind(), "exponent form is a float")
	require.Equal(t, ValueInt, items[4].Kind())

	i, ok := items[0].Int64()
	require.True(t, ok)
	require.Equal(t, int64(1), i)

	f, ok := items[1].Float64()
	require.True(t, ok)
	require.Equal(t, 1.0, f)
}

func TestFromJSONGraph(t *testing.T) {
	t.Parallel()

	v, err := FromJSON([]byte(`{"a": null, "b": true, "c": "hi", "d": [1, {"e": 2.5}]}`))
	require.NoError(t, err)
	require.Equal(t, ValueObject, v.Kind())

	entries, ok := v.Object()
	require.True(t, ok)
	require.True(t, entries["a"].IsNull())

	b, ok := entries["b"].Bool()
	require.True(t, ok)
	require.True(t, b)

	d, ok := entries["d"].Items()
	require.True(t, ok)
	require.Len(t, d, 2)
	require.Equal(t, ValueObject, d[1].Kind())
}

func TestFromJSONMalformed(t *testing.T) {
	t.Parallel()

	_, err := FromJSON([]byte(`{"a":`))
	require.Error(t, err)
}

func TestDefensiveCopies(t *testing.T) {
	t.Parallel()

	src := []Value{NewInt(1), NewInt(2)}
	arr := NewArray(src)
	src[0] = NewInt(99)

	items, ok := arr.Items()
	require.True(t, ok)
	require.True(t, items[0].Equal(NewInt(1)), "constructor must copy its input slice")

	items[1] = NewInt(99)
	again, _ := arr.Items()
	require.True(t, again[1].Equal(NewInt(2)), "accessor must hand out a copy")

	m := map[string]Value{"a": NewInt(1)}
	obj := NewObject(m)
	m["a"] = NewInt(99)
	entries, _ := obj.Object()
	require.True(t, entries["a"].Equal(NewInt(1)))
}

func TestRecordAccessors(t *testing.T) {
	t.Parallel()

	rec := NewRecord("User", []Field{
		{Name: "id", Value: NewString("5")},
		{Name: "bot", Value: NewBool(false)},
	})
	require.Equal(t, "User", rec.Name())

	id, ok := rec.Field("id")
	require.True(t, ok)
	require.True(t, id.Equal(NewString("5")))

	_, ok = rec.Field("missing")
	require.False(t, ok)

	fields, ok := rec.Fields()
	require.True(t, ok)
	require.Equal(t, []string{"id", "bot"}, []string{fields[0].Name, fields[1].Name},
		"field order must be preserved")
}

func TestEnumAccessors(t *testing.T) {
	t.Parallel()

	e := NewEnum("Privacy", "PUBLIC", NewString("public"))
	member, ok := e.EnumMember()
	require.True(t, ok)
	require.Equal(t, "PUBLIC", member)

	backing, ok := e.Backing()
	require.True(t, ok)
	require.True(t, backing.Equal(NewString("public")))
}

func TestAccessorKindGuards(t *testing.T) {
	t.Parallel()

	v := NewInt(1)
	_, ok := v.Bool()
	require.False(t, ok)
	_, ok = v.String()
	require.False(t, ok)
	_, ok = v.Items()
	require.False(t, ok)
	_, ok = v.Object()
	require.False(t, ok)
	require.Equal(t, ValueInvalid, Value{}.Kind())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "same int", a: NewInt(1), b: NewInt(1), want: true},
		{name: "different int", a: NewInt(1), b: NewInt(2), want: false},
		{name: "int vs equal float", a: NewInt(1), b: NewFloat(1.0), want: false},
		{name: "null vs null", a: NewNull(), b: NewNull(), want: true},
		{
			name: "arrays order sensitive",
			a:    NewArray([]Value{NewInt(1), NewInt(2)}),
			b:    NewArray([]Value{NewInt(2), NewInt(1)}),
			want: false,
		},
		{
			name: "sets order insensitive",
			a:    NewSet([]Value{NewInt(1), NewInt(2)}),
			b:    NewSet([]Value{NewInt(2), NewInt(1)}),
			want: true,
		},
		{
			name: "set vs array",
			a:    NewSet([]Value{NewInt(1)}),
			b:    NewArray([]Value{NewInt(1)}),
			want: false,
		},
		{
			name: "objects keywise",
			a:    NewObject(map[string]Value{"a": NewInt(1), "b": NewInt(2)}),
			b:    NewObject(map[string]Value{"b": NewInt(2), "a": NewInt(1)}),
			want: true,
		},
		{
			name: "records need same name",
			a:    NewRecord("A", []Field{{Name: "x", Value: NewInt(1)}}),
			b:    NewRecord("B", []Field{{Name: "x", Value: NewInt(1)}}),
			want: false,
		},
		{
			name: "enums by enum and member name",
			a:    NewEnum("Privacy", "PUBLIC", NewString("public")),
			b:    NewEnum("Privacy", "PUBLIC", NewString("public")),
			want: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.a.Equal(tt.b))
			require.Equal(t, tt.want, tt.b.Equal(tt.a), "Equal must be symmetric")
		})
	}
}

func TestFingerprintAgreesWithEqual(t *testing.T) {
	t.Parallel()

	a := NewObject(map[string]Value{"x": NewInt(1), "y": NewString("hi")})
	b := NewObject(map[string]Value{"y": NewString("hi"), "x": NewInt(1)})
	require.Equal(t, a.Fingerprint(), b.Fingerprint(), "equal values share a fingerprint")

	s1 := NewSet([]Value{NewInt(1), NewInt(2)})
	s2 := NewSet([]Value{NewInt(2), NewInt(1)})
	require.Equal(t, s1.Fingerprint(), s2.Fingerprint())

	require.NotEqual(t, NewInt(1).Fingerprint(), NewFloat(1.0).Fingerprint(),
		"kind participates in the fingerprint")
}

func TestAsInterfaceAndMarshal(t *testing.T) {
	t.Parallel()

	instant := time.Date(2023, 3, 3, 8, 29, 10, 0, time.UTC)
	rec := NewRecord("Post", []Field{
		{Name: "id", Value: NewString("1")},
		{Name: "visibility", Value: NewEnum("Privacy", "PUBLIC", NewString("public"))},
		{Name: "created_at", Value: NewTime(instant)},
		{Name: "tags", Value: NewSet([]Value{NewString("go")})},
	})

	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "1", got["id"])
	require.Equal(t, "public", got["visibility"], "enums render as their backing value")
	require.Equal(t, "2023-03-03T08:29:10Z", got["created_at"])
	require.Equal(t, []any{"go"}, got["tags"])
}

func TestFromAnyUnhandledType(t *testing.T) {
	t.Parallel()

	require.Equal(t, ValueInvalid, FromAny(struct{}{}).Kind())
	require.Equal(t, ValueInt, FromAny(7).Kind())
	require.Equal(t, ValueFloat, FromAny(2.5).Kind())
}
