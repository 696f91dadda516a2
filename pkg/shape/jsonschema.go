package shape

import (
	"encoding/json"
	"fmt"
	"sort"

	jptr "github.com/qri-io/jsonpointer"
	qjsonschema "github.com/qri-io/jsonschema"
)

// FromJSONSchema derives a shape descriptor from a JSON Schema document
// (Draft-07-like subset).
//
// Supported keywords include (non-exhaustive):
//   - type (string or array of strings: "object", "array", "string",
//     "integer", "number", "boolean", "null")
//   - properties (object) for object types; every declared property becomes a
//     required record field, matching the engine's no-optional-fields rule;
//     express optionality in the schema as anyOf with null
//   - additionalProperties (schema) without properties -> string-keyed map
//   - items (schema or array of schemas) for array types
//   - anyOf / oneOf (array of schemas) -> union of member shapes, in order
//   - allOf (array of schemas) -> merged record/list shapes where possible
//   - enum (strings or integers) -> enumeration shape
//   - format: "date-time" on strings -> temporal shape
//
// Unsupported or unrecognized nodes map to the arbitrary-JSON shape.
//
// Parameters:
//
//	schemaJSON []byte: The JSON bytes of a JSON Schema document.
//
// Returns:
//
//	*Shape: The derived shape descriptor.
//	error: An error if the schema cannot be parsed; otherwise nil.
func FromJSONSchema(schemaJSON []byte) (*Shape, error) {
	rs := &qjsonschema.Schema{}
	if err := json.Unmarshal(schemaJSON, rs); err != nil {
		return nil, fmt.Errorf("shape: parse JSON Schema: %w", err)
	}
	return shapeFromQriSchema(rs), nil
}

// shapeFromQriSchema converts a qri-io/jsonschema node into a Shape by
// interpreting core JSON Schema keywords. Unknown shapes map to JSON().
func shapeFromQriSchema(rs *qjsonschema.Schema) *Shape {
	if rs == nil {
		return JSON()
	}

	if s, ok := tryCombinatorsAt(rs); ok {
		return s
	}
	if s, ok := enumShapeAt(rs); ok {
		return s
	}

	// Type can be a string or an array of strings.
	var typeNames []string
	if v := rs.JSONProp("type"); v != nil {
		switch tv := v.(type) {
		case *qjsonschema.Type:
			typeNames = extractTypeNames(tv)
		case qjsonschema.Type:
			typeNames = extractTypeNames(&tv)
		case string:
			typeNames = []string{tv}
		}
	}

	if len(typeNames) == 0 {
		if s, ok := recordFromPropertiesAt(rs); ok {
			return s
		}
		if s, ok := listFromItemsAt(rs); ok {
			return s
		}
		return JSON()
	}

	if len(typeNames) > 1 {
		parts := make([]*Shape, 0, len(typeNames))
		for _, tn := range typeNames {
			parts = append(parts, shapeByTypeNameAt(rs, tn))
		}
		return NewUnion(parts...)
	}
	return shapeByTypeNameAt(rs, typeNames[0])
}

// extractTypeNames reads the "type" keyword value out of a qri Type wrapper.
// The wrapper does not expose whether the document declared a single name or
// an array, so the JSON encoding is decoded both ways.
func extractTypeNames(t *qjsonschema.Type) []string {
	if t == nil {
		return nil
	}
	b, err := t.MarshalJSON()
	if err != nil || len(b) == 0 {
		if s := t.String(); s != "" {
			return []string{s}
		}
		return nil
	}
	var names []string
	if json.Unmarshal(b, &names) == nil {
		return names
	}
	var one string
	if json.Unmarshal(b, &one) == nil && one != "" {
		names = append(names, one)
	}
	return names
}

// shapeByTypeNameAt builds a Shape for a specific JSON Schema "type" value,
// delegating to record/list helpers when applicable.
func shapeByTypeNameAt(rs *qjsonschema.Schema, typ string) *Shape {
	switch typ {
	case "object":
		if s, ok := recordFromPropertiesAt(rs); ok {
			return s
		}
		return NewMap(JSON())
	case "array":
		if s, ok := listFromItemsAt(rs); ok {
			return s
		}
		return NewList(JSON())
	case "string":
		if isDateTimeFormatAt(rs) {
			return NewDateTime()
		}
		return NewString()
	case "integer":
		return NewInt()
	case "number":
		return NewFloat()
	case "boolean":
		return NewBool()
	case "null":
		return NewNull()
	default:
		return JSON()
	}
}

// isDateTimeFormatAt reports whether the node carries format: "date-time".
// The format keyword value is inspected through its JSON encoding to stay
// independent of the wrapper type qri exposes.
func isDateTimeFormatAt(rs *qjsonschema.Schema) bool {
	v := rs.JSONProp("format")
	if v == nil {
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return string(b) == `"date-time"`
}

// enumShapeAt builds an enumeration shape from the "enum" keyword if present.
// Member names are the literal backing values.
func enumShapeAt(rs *qjsonschema.Schema) (*Shape, bool) {
	v := rs.JSONProp("enum")
	if v == nil {
		return nil, false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil || len(raw) == 0 {
		return nil, false
	}
	members := make([]Member, 0, len(raw))
	for _, item := range raw {
		switch bv := item.(type) {
		case string:
			members = append(members, StrMember(bv, bv))
		case float64:
			if bv == float64(int64(bv)) {
				members = append(members, IntMember(fmt.Sprintf("%d", int64(bv)), int64(bv)))
			} else {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return NewEnum("", members...), true
}

// tryCombinatorsAt handles anyOf/oneOf/allOf branches.
func tryCombinatorsAt(rs *qjsonschema.Schema) (*Shape, bool) {
	if arr := combinatorSchemas(rs.JSONProp("anyOf")); len(arr) > 0 {
		return unionFromSchemasAt(arr), true
	}
	if arr := combinatorSchemas(rs.JSONProp("oneOf")); len(arr) > 0 {
		return unionFromSchemasAt(arr), true
	}
	if arr := combinatorSchemas(rs.JSONProp("allOf")); len(arr) > 0 {
		return mergeAllOfAt(arr), true
	}
	return nil, false
}

// combinatorSchemas unwraps an anyOf/oneOf/allOf keyword value to its member
// schemas; each keyword has its own named slice type in the qri package.
func combinatorSchemas(v interface{}) []*qjsonschema.Schema {
	switch s := v.(type) {
	case *qjsonschema.AnyOf:
		if s != nil {
			return *s
		}
	case *qjsonschema.OneOf:
		if s != nil {
			return *s
		}
	case *qjsonschema.AllOf:
		if s != nil {
			return *s
		}
	}
	return nil
}

// unionFromSchemasAt converts a slice of qri schemas to a union shape,
// preserving declaration order (the order is a semantic tie-break for the
// decoder).
func unionFromSchemasAt(list []*qjsonschema.Schema) *Shape {
	parts := make([]*Shape, 0, len(list))
	for _, sub := range list {
		parts = append(parts, shapeFromQriSchema(sub))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return NewUnion(parts...)
}

// mergeAllOfAt merges a list of schemas as in JSON Schema allOf by converting
// each to a Shape and combining with mergeShapes.
func mergeAllOfAt(list []*qjsonschema.Schema) *Shape {
	if len(list) == 0 {
		return JSON()
	}
	acc := shapeFromQriSchema(list[0])
	for i := 1; i < len(list); i++ {
		acc = mergeShapes(acc, shapeFromQriSchema(list[i]))
	}
	return acc
}

// mergeShapes combines two shapes conjunctively where possible: records merge
// their field sets, lists merge element shapes, equal shapes collapse.
// Anything else degrades to a union of both.
func mergeShapes(a, b *Shape) *Shape {
	if a.IsEqual(b) {
		return a
	}
	if a.Kind == KindRecord && b.Kind == KindRecord {
		fields := make([]Field, 0, len(a.Fields)+len(b.Fields))
		seen := make(map[string]int, len(a.Fields))
		for _, f := range a.Fields {
			seen[f.Name] = len(fields)
			fields = append(fields, f)
		}
		for _, f := range b.Fields {
			if i, ok := seen[f.Name]; ok {
				fields[i] = F(f.Name, mergeShapes(fields[i].Shape, f.Shape))
				continue
			}
			fields = append(fields, f)
		}
		return NewRecord("", fields...)
	}
	if a.Kind == KindList && b.Kind == KindList {
		return NewList(mergeShapes(a.Elem, b.Elem))
	}
	return NewUnion(a, b)
}

// recordFromPropertiesAt builds a record shape from the "properties" keyword
// if present. Field order follows sorted property names so derived shapes are
// deterministic. Objects without properties but with an additionalProperties
// schema become string-keyed maps.
func recordFromPropertiesAt(rs *qjsonschema.Schema) (*Shape, bool) {
	if rs.HasKeyword("properties") {
		v := rs.JSONProp("properties")
		if v != nil {
			props, ok := v.(*qjsonschema.Properties)
			if !ok || props == nil {
				return nil, false
			}
			names := make([]string, 0, len(*props))
			for k := range *props {
				names = append(names, k)
			}
			sort.Strings(names)
			fields := make([]Field, 0, len(names))
			for _, k := range names {
				fields = append(fields, F(k, shapeFromQriSchema((*props)[k])))
			}
			return NewRecord("", fields...), true
		}
	}
	if ap, ok := additionalPropertiesShapeAt(rs); ok {
		return NewMap(ap), true
	}
	return nil, false
}

// additionalPropertiesShapeAt extracts the additionalProperties schema, when
// it is a schema or true. Explicit false and absence both report no shape.
func additionalPropertiesShapeAt(rs *qjsonschema.Schema) (*Shape, bool) {
	v := rs.JSONProp("additionalProperties")
	if v == nil {
		return nil, false
	}
	switch ap := v.(type) {
	case *qjsonschema.AdditionalProperties:
		if ap == nil {
			return nil, false
		}
		sch := ap.Resolve(jptr.Pointer{}, "")
		if sch == nil {
			return nil, false
		}
		if b, err := sch.MarshalJSON(); err == nil {
			if string(b) == "true" {
				return JSON(), true
			}
			if string(b) == "false" {
				return nil, false
			}
		}
		return shapeFromQriSchema(sch), true
	case bool:
		if ap {
			return JSON(), true
		}
		return nil, false
	case *qjsonschema.Schema:
		if ap == nil {
			return nil, false
		}
		return shapeFromQriSchema(ap), true
	default:
		return nil, false
	}
}

// listFromItemsAt builds a sequence shape from the "items" keyword if
// present. A single item schema yields a homogeneous list; tuple-style item
// arrays yield a fixed tuple shape.
func listFromItemsAt(rs *qjsonschema.Schema) (*Shape, bool) {
	v := rs.JSONProp("items")
	if v == nil {
		return nil, false
	}
	items, ok := v.(*qjsonschema.Items)
	if !ok {
		return nil, false
	}
	if items == nil || len(items.Schemas) == 0 {
		return NewList(JSON()), true
	}
	if len(items.Schemas) == 1 {
		return NewList(shapeFromQriSchema(items.Schemas[0])), true
	}
	parts := make([]*Shape, len(items.Schemas))
	for i, sub := range items.Schemas {
		parts[i] = shapeFromQriSchema(sub)
	}
	return NewTuple(parts...), true
}
