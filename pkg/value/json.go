package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FromJSON parses raw JSON bytes into a Value graph. Numbers are classified
// as ValueInt or ValueFloat from their lexical form, so 1 and 1.0 stay
// distinct kinds and no implicit numeric coercion happens later.
//
// Parameters:
//
//	data []byte: The raw JSON document.
//
// Returns:
//
//	Value: The parsed value graph.
//	error: A parse error when the document is not valid JSON.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("value: parse JSON: %w", err)
	}
	return FromAny(raw), nil
}

// FromAny converts an already-decoded JSON graph (as produced by
// encoding/json into any) to a Value. json.Number is split into int or float
// by lexical form; unhandled Go types map to ValueInvalid.
//
// Parameters:
//
//	raw any: The decoded JSON graph.
//
// Returns:
//
//	Value: The converted value graph.
func FromAny(raw any) Value {
	switch rv := raw.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBool(rv)
	case json.Number:
		if strings.ContainsAny(rv.String(), ".eE") {
			f, err := rv.Float64()
			if err != nil {
				return Value{}
			}
			return NewFloat(f)
		}
		i, err := rv.Int64()
		if err != nil {
			f, ferr := rv.Float64()
			if ferr != nil {
				return Value{}
			}
			return NewFloat(f)
		}
		return NewInt(i)
	case int:
		return NewInt(int64(rv))
	case int64:
		return NewInt(rv)
	case float64:
		return NewFloat(rv)
	case string:
		return NewString(rv)
	case []any:
		items := make([]Value, len(rv))
		for i, item := range rv {
			items[i] = FromAny(item)
		}
		return NewArray(items)
	case map[string]any:
		entries := make(map[string]Value, len(rv))
		for k, item := range rv {
			entries[k] = FromAny(item)
		}
		return NewObject(entries)
	default:
		return Value{}
	}
}

// MarshalJSON renders the natural JSON encoding of the value: records as
// field-keyed objects, enums as their backing value, instants as RFC 3339
// strings, sets and tuples as arrays. This exists for round-trip testing and
// diagnostics; decoding remains the primary direction.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.AsInterface())
}
