// Package value provides a tagged representation of JSON documents and of the
// typed values produced by shape-directed decoding.
package value

import (
	"sort"
	"time"
)

// Kind enumerates the value categories a Value can hold. The first group
// (Null..Object) covers raw JSON input graphs; the second group (Set..Time)
// covers typed decode results that have no direct JSON equivalent.
//
// Values:
//
//	ValueInvalid | ValueNull | ValueBool | ValueInt | ValueFloat | ValueString |
//	ValueArray | ValueObject | ValueSet | ValueTuple | ValueRecord | ValueEnum |
//	ValueTime
type Kind string

const (
	ValueInvalid Kind = "invalid"
	ValueNull    Kind = "null"
	ValueBool    Kind = "bool"
	ValueInt     Kind = "int"
	ValueFloat   Kind = "float"
	ValueString  Kind = "string"
	ValueArray   Kind = "array"
	ValueObject  Kind = "object"
	ValueSet     Kind = "set"
	ValueTuple   Kind = "tuple"
	ValueRecord  Kind = "record"
	ValueEnum    Kind = "enum"
	ValueTime    Kind = "time"
)

// Field is one named, ordered member of a record value.
type Field struct {
	Name  string
	Value Value
}

// Value is a simple tagged union over JSON-compatible payloads plus the typed
// aggregates (records, enums, sets, tuples, instants) a decoder produces.
// Values are immutable; accessors hand out defensive copies of composite
// payloads.
type Value struct {
	kind      Kind
	boolVal   bool
	intVal    int64
	floatVal  float64
	stringVal string
	timeVal   time.Time
	items     []Value
	entries   map[string]Value
	fields    []Field
	name      string
	backing   *Value
}

// NewNull creates a Value representing JSON null.
func NewNull() Value {
	return Value{kind: ValueNull}
}

// NewBool creates a Value that stores a boolean.
func NewBool(v bool) Value {
	return Value{kind: ValueBool, boolVal: v}
}

// NewInt creates a Value that stores a signed integer.
func NewInt(v int64) Value {
	return Value{kind: ValueInt, intVal: v}
}

// NewFloat creates a Value that stores a floating point number.
func NewFloat(v float64) Value {
	return Value{kind: ValueFloat, floatVal: v}
}

// NewString creates a Value that stores a UTF-8 string.
func NewString(v string) Value {
	return Value{kind: ValueString, stringVal: v}
}

// NewArray creates a Value that stores an ordered collection.
//
// Parameters:
//
//	items []Value: Elements of the resulting array.
//
// Returns:
//
//	Value: A Value tagged as ValueArray with a defensive copy of items.
func NewArray(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: ValueArray, items: cp}
}

// NewObject creates a Value that stores a string-keyed JSON object.
//
// Parameters:
//
//	entries map[string]Value: Map entries to clone.
//
// Returns:
//
//	Value: A Value tagged as ValueObject with copied entries.
func NewObject(entries map[string]Value) Value {
	cp := make(map[string]Value, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return Value{kind: ValueObject, entries: cp}
}

// NewSet creates a Value that stores an unordered, duplicate-free collection.
// The caller is responsible for deduplicating items; NewSet stores them as
// given.
func NewSet(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: ValueSet, items: cp}
}

// NewTuple creates a Value that stores a fixed-arity positional collection.
func NewTuple(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: ValueTuple, items: cp}
}

// NewRecord creates a Value that stores a named record with ordered fields.
//
// Parameters:
//
//	name string: The record type name; may be empty for anonymous records.
//	fields []Field: Ordered field values.
//
// Returns:
//
//	Value: A Value tagged as ValueRecord with a defensive copy of fields.
func NewRecord(name string, fields []Field) Value {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Value{kind: ValueRecord, name: name, fields: cp}
}

// NewEnum creates a Value that stores one named member of an enumeration.
//
// Parameters:
//
//	enumName string: The enumeration type name.
//	member string: The matched member name.
//	backing Value: The member's backing value (string or integer).
//
// Returns:
//
//	Value: A Value tagged as ValueEnum.
func NewEnum(enumName, member string, backing Value) Value {
	return Value{kind: ValueEnum, name: enumName, stringVal: member, backing: &backing}
}

// NewTime creates a Value that stores an instant in time.
func NewTime(t time.Time) Value {
	return Value{kind: ValueTime, timeVal: t}
}

// Kind returns the discriminator for the stored data.
//
// Returns:
//
//	Kind: The stored kind, defaulting to ValueInvalid when unset.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return ValueInvalid
	}
	return v.kind
}

// IsNull reports whether the Value is JSON null.
func (v Value) IsNull() bool {
	return v.kind == ValueNull
}

// Bool returns the boolean payload when the Value represents a bool.
//
// Returns:
//
//	bool: Stored boolean value.
//	bool: True when the Value actually contains a boolean.
func (v Value) Bool() (bool, bool) {
	if v.kind != ValueBool {
		return false, false
	}
	return v.boolVal, true
}

// Int64 returns the integer payload when the Value represents an int.
//
// Returns:
//
//	int64: Stored integer value.
//	bool: True when the Value actually contains an integer.
func (v Value) Int64() (int64, bool) {
	if v.kind != ValueInt {
		return 0, false
	}
	return v.intVal, true
}

// Float64 returns the float payload when the Value represents a float.
//
// Returns:
//
//	float64: Stored float value.
//	bool: True when the Value actually contains a float.
func (v Value) Float64() (float64, bool) {
	if v.kind != ValueFloat {
		return 0, false
	}
	return v.floatVal, true
}

// String returns the string payload when the Value represents a string.
//
// Returns:
//
//	string: Stored string value.
//	bool: True when the Value actually contains a string.
func (v Value) String() (string, bool) {
	if v.kind != ValueString {
		return "", false
	}
	return v.stringVal, true
}

// Items returns the element payload for arrays, sets, and tuples.
//
// Returns:
//
//	[]Value: Defensive copy of the stored elements.
//	bool: True when the Value contains an array, set, or tuple.
func (v Value) Items() ([]Value, bool) {
	switch v.kind {
	case ValueArray, ValueSet, ValueTuple:
		cp := make([]Value, len(v.items))
		copy(cp, v.items)
		return cp, true
	default:
		return nil, false
	}
}

// Object returns the map payload when the Value represents a JSON object.
//
// Returns:
//
//	map[string]Value: Defensive copy of the stored map.
//	bool: True when the Value actually contains an object.
func (v Value) Object() (map[string]Value, bool) {
	if v.kind != ValueObject {
		return nil, false
	}
	cp := make(map[string]Value, len(v.entries))
	for k, val := range v.entries {
		cp[k] = val
	}
	return cp, true
}

// Fields returns the ordered fields when the Value represents a record.
//
// Returns:
//
//	[]Field: Defensive copy of the stored fields.
//	bool: True when the Value actually contains a record.
func (v Value) Fields() ([]Field, bool) {
	if v.kind != ValueRecord {
		return nil, false
	}
	cp := make([]Field, len(v.fields))
	copy(cp, v.fields)
	return cp, true
}

// Field looks up a record field by name.
//
// Parameters:
//
//	name string: The field name to look up.
//
// Returns:
//
//	Value: The field value, if present.
//	bool: True when the Value is a record and declares the field.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != ValueRecord {
		return Value{}, false
	}
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Name returns the type name for record and enum values, and the empty string
// otherwise.
func (v Value) Name() string {
	switch v.kind {
	case ValueRecord, ValueEnum:
		return v.name
	default:
		return ""
	}
}

// EnumMember returns the member name when the Value represents an enum member.
//
// Returns:
//
//	string: The matched member name.
//	bool: True when the Value actually contains an enum member.
func (v Value) EnumMember() (string, bool) {
	if v.kind != ValueEnum {
		return "", false
	}
	return v.stringVal, true
}

// Backing returns the backing value of an enum member.
//
// Returns:
//
//	Value: The member's declared backing value.
//	bool: True when the Value actually contains an enum member.
func (v Value) Backing() (Value, bool) {
	if v.kind != ValueEnum || v.backing == nil {
		return Value{}, false
	}
	return *v.backing, true
}

// Time returns the instant payload when the Value represents a point in time.
//
// Returns:
//
//	time.Time: Stored instant.
//	bool: True when the Value actually contains an instant.
func (v Value) Time() (time.Time, bool) {
	if v.kind != ValueTime {
		return time.Time{}, false
	}
	return v.timeVal, true
}

// AsInterface returns the closest built-in Go representation (bool, string,
// int64, float64, []any, map[string]any, time formatted as RFC 3339) for the
// stored value, recursively converting nested elements. Records map to
// field-keyed objects and enums to their backing value, which makes the result
// suitable for re-encoding with encoding/json in round-trip tests.
//
// Returns:
//
//	any: Native Go value matching the stored payload.
func (v Value) AsInterface() any {
	switch v.kind {
	case ValueBool:
		return v.boolVal
	case ValueInt:
		return v.intVal
	case ValueFloat:
		return v.floatVal
	case ValueString:
		return v.stringVal
	case ValueArray, ValueSet, ValueTuple:
		arr := make([]any, len(v.items))
		for i, item := range v.items {
			arr[i] = item.AsInterface()
		}
		return arr
	case ValueObject:
		mp := make(map[string]any, len(v.entries))
		for k, item := range v.entries {
			mp[k] = item.AsInterface()
		}
		return mp
	case ValueRecord:
		mp := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			mp[f.Name] = f.Value.AsInterface()
		}
		return mp
	case ValueEnum:
		if v.backing == nil {
			return v.stringVal
		}
		return v.backing.AsInterface()
	case ValueTime:
		return v.timeVal.UTC().Format(time.RFC3339Nano)
	default:
		return nil
	}
}

// Equal reports deep structural equality between two values. Kinds must match
// exactly; in particular an int never equals a float. Set comparison is
// order-insensitive.
//
// Parameters:
//
//	other Value: The value to compare against.
//
// Returns:
//
//	bool: True when both values are structurally equal.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.kind {
	case ValueNull:
		return true
	case ValueBool:
		return v.boolVal == other.boolVal
	case ValueInt:
		return v.intVal == other.intVal
	case ValueFloat:
		return v.floatVal == other.floatVal
	case ValueString:
		return v.stringVal == other.stringVal
	case ValueArray, ValueTuple:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case ValueSet:
		return setEqual(v.items, other.items)
	case ValueObject:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for k, val := range v.entries {
			o, ok := other.entries[k]
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	case ValueRecord:
		if v.name != other.name || len(v.fields) != len(other.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Name != other.fields[i].Name ||
				!v.fields[i].Value.Equal(other.fields[i].Value) {
				return false
			}
		}
		return true
	case ValueEnum:
		return v.name == other.name && v.stringVal == other.stringVal
	case ValueTime:
		return v.timeVal.Equal(other.timeVal)
	default:
		return false
	}
}

// setEqual compares two element slices as multisets using fingerprints, with
// a structural Equal pass to guard against fingerprint collisions.
func setEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	buckets := make(map[uint64][]Value, len(b))
	for _, item := range b {
		fp := item.Fingerprint()
		buckets[fp] = append(buckets[fp], item)
	}
	for _, item := range a {
		fp := item.Fingerprint()
		candidates := buckets[fp]
		matched := -1
		for i, c := range candidates {
			if item.Equal(c) {
				matched = i
				break
			}
		}
		if matched < 0 {
			return false
		}
		buckets[fp] = append(candidates[:matched], candidates[matched+1:]...)
	}
	return true
}

// sortedKeys returns the object keys in a deterministic order for
// fingerprinting.
func sortedKeys(entries map[string]Value) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
