package shape

import (
	"testing"
)

func mustSchema(t *testing.T, schema string) *Shape {
	t.Helper()
	s, err := FromJSONSchema([]byte(schema))
	if err != nil {
		t.Fatalf("FromJSONSchema error: %v", err)
	}
	return s
}

func fieldShape(t *testing.T, rec *Shape, name string) *Shape {
	t.Helper()
	if rec.Kind != KindRecord {
		t.Fatalf("expected record, got %s", rec)
	}
	for _, f := range rec.Fields {
		if f.Name == name {
			return f.Shape
		}
	}
	t.Fatalf("record %s has no field %q", rec, name)
	return nil
}

func TestFromJSONSchema_ObjectBasic(t *testing.T) {
	t.Parallel()
	schema := `{
        "type": "object",
        "properties": {
            "name": {"type": "string"},
            "age": {"type": "integer"},
            "meta": {"type": "object", "properties": {"active": {"type":"boolean"}}}
        }
    }`
	s := mustSchema(t, schema)

	if got := fieldShape(t, s, "name"); got.Kind != KindString {
		t.Errorf("expected name to be string, got %s", got)
	}
	if got := fieldShape(t, s, "age"); got.Kind != KindInt {
		t.Errorf("expected age to be int, got %s", got)
	}
	meta := fieldShape(t, s, "meta")
	if got := fieldShape(t, meta, "active"); got.Kind != KindBool {
		t.Errorf("expected meta.active to be boolean, got %s", got)
	}
}

func TestFromJSONSchema_FieldOrderDeterministic(t *testing.T) {
	t.Parallel()
	schema := `{
        "type": "object",
        "properties": {
            "b": {"type": "string"},
            "a": {"type": "integer"},
            "c": {"type": "boolean"}
        }
    }`
	s := mustSchema(t, schema)

	want := []string{"a", "b", "c"}
	if len(s.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(s.Fields))
	}
	for i, name := range want {
		if s.Fields[i].Name != name {
			t.Errorf("field %d = %q, want %q", i, s.Fields[i].Name, name)
		}
	}
}

func TestFromJSONSchema_ArrayItems(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{"type": "array", "items": {"type": "string"}}`)
	if s.Kind != KindList || s.Elem.Kind != KindString {
		t.Fatalf("expected list<string>, got %s", s)
	}
}

func TestFromJSONSchema_TupleItems(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{
        "type": "array",
        "items": [{"type": "integer"}, {"type": "number"}, {"type": "string"}]
    }`)
	if s.Kind != KindTuple || len(s.Items) != 3 {
		t.Fatalf("expected 3-position tuple, got %s", s)
	}
	if s.Items[0].Kind != KindInt || s.Items[1].Kind != KindFloat || s.Items[2].Kind != KindString {
		t.Errorf("unexpected tuple positions: %s", s)
	}
}

func TestFromJSONSchema_AnyOfUnionOrder(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{"anyOf": [{"type": "string"}, {"type": "null"}]}`)
	if s.Kind != KindUnion || len(s.Items) != 2 {
		t.Fatalf("expected two-alternative union, got %s", s)
	}
	// Declaration order is a semantic tie-break and must survive conversion.
	if s.Items[0].Kind != KindString || s.Items[1].Kind != KindNull {
		t.Errorf("union order not preserved: %s", s)
	}
}

func TestFromJSONSchema_TypeArray(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{"type": ["integer", "null"]}`)
	if s.Kind != KindUnion || len(s.Items) != 2 {
		t.Fatalf("expected union from type array, got %s", s)
	}
}

func TestFromJSONSchema_Enum(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{"type": "string", "enum": ["public", "unlisted", "private"]}`)
	if s.Kind != KindEnum || len(s.Members) != 3 {
		t.Fatalf("expected 3-member enum, got %s", s)
	}
	if s.Members[0].Str != "public" || s.Members[0].IntBacked {
		t.Errorf("unexpected first member: %+v", s.Members[0])
	}
}

func TestFromJSONSchema_DateTimeFormat(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{"type": "string", "format": "date-time"}`)
	if s.Kind != KindDateTime {
		t.Fatalf("expected datetime, got %s", s)
	}
}

func TestFromJSONSchema_AdditionalPropertiesMap(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{"type": "object", "additionalProperties": {"type": "integer"}}`)
	if s.Kind != KindMap || s.Elem.Kind != KindInt {
		t.Fatalf("expected map<string, int>, got %s", s)
	}
}

func TestFromJSONSchema_AllOfMergesRecords(t *testing.T) {
	t.Parallel()

	s := mustSchema(t, `{
        "allOf": [
            {"type": "object", "properties": {"a": {"type": "integer"}}},
            {"type": "object", "properties": {"b": {"type": "string"}}}
        ]
    }`)
	if s.Kind != KindRecord || len(s.Fields) != 2 {
		t.Fatalf("expected merged record with 2 fields, got %s", s)
	}
}

func TestFromJSONSchema_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := FromJSONSchema([]byte(`{`)); err == nil {
		t.Fatal("expected parse error for malformed schema")
	}
}
