package shape

import "testing"

func TestFromYAMLExample_Basic(t *testing.T) {
	t.Parallel()

	doc := []byte(`
name: dunkyl
age: 30
score: 2.5
active: true
tags:
  - a
  - b
nothing: null
`)
	s, err := FromYAMLExample(doc)
	if err != nil {
		t.Fatalf("FromYAMLExample error: %v", err)
	}
	if s.Kind != KindRecord {
		t.Fatalf("expected record root, got %s", s)
	}

	want := map[string]Kind{
		"name":    KindString,
		"age":     KindInt,
		"score":   KindFloat,
		"active":  KindBool,
		"tags":    KindList,
		"nothing": KindNull,
	}
	if len(s.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(s.Fields))
	}
	for _, f := range s.Fields {
		if f.Shape.Kind != want[f.Name] {
			t.Errorf("field %s: expected %s, got %s", f.Name, want[f.Name], f.Shape.Kind)
		}
	}
}

func TestFromYAMLExample_NestedAndEmptyList(t *testing.T) {
	t.Parallel()

	doc := []byte(`
user:
  id: "1"
  emojis: []
`)
	s, err := FromYAMLExample(doc)
	if err != nil {
		t.Fatalf("FromYAMLExample error: %v", err)
	}
	user := s.Fields[0].Shape
	if user.Kind != KindRecord {
		t.Fatalf("expected nested record, got %s", user)
	}
	for _, f := range user.Fields {
		if f.Name == "emojis" {
			if f.Shape.Kind != KindList {
				t.Fatalf("expected list for empty sequence, got %s", f.Shape)
			}
			if f.Shape.Elem.Kind != KindUnion {
				t.Errorf("empty sequence should infer arbitrary JSON elements, got %s", f.Shape.Elem)
			}
		}
	}
}

func TestFromYAMLExample_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := FromYAMLExample([]byte("{: bad")); err == nil {
		t.Fatal("expected error for malformed document")
	}
}
