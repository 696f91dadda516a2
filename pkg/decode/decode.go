// Package decode implements the recursive, shape-directed JSON decoder.
//
// The engine is purely synchronous and free of shared mutable state: each
// call builds its own binding environment, and shape descriptors are treated
// as immutable, so any number of decode calls may run concurrently against
// the same shapes.
package decode

import (
	"fmt"

	serr "github.com/dunkyl/slymastodon/pkg/err"
	"github.com/dunkyl/slymastodon/pkg/shape"
	"github.com/dunkyl/slymastodon/pkg/value"
)

// Decode produces a typed value conforming to the given shape from a JSON
// value graph, or fails. Decoding is all-or-nothing: no partial result is
// ever returned.
//
// Parameters:
//
//	s *shape.Shape: The target shape descriptor.
//	v value.Value: The JSON value to decode.
//
// Returns:
//
//	value.Value: The typed value.
//	error: A *Error for nonconforming data, or a configuration error
//	       (serr.ErrUnboundTypeParam, serr.ErrUnresolvedSymbol) for a
//	       malformed shape declaration.
func Decode(s *shape.Shape, v value.Value) (value.Value, error) {
	return DecodeIn(s, v, shape.NewEnv(), nil)
}

// DecodeJSON parses raw JSON bytes and decodes them against a shape.
func DecodeJSON(s *shape.Shape, raw []byte) (value.Value, error) {
	v, err := value.FromJSON(raw)
	if err != nil {
		return value.Value{}, err
	}
	return Decode(s, v)
}

// DecodeIn decodes under an explicit binding environment and enclosing
// scope. Callers that declare their shapes in a shared defining context (an
// entity catalog, a registry) pass that context's scope so delayed references
// resolve.
//
// Parameters:
//
//	s *shape.Shape: The target shape, possibly symbolic.
//	v value.Value: The JSON value to decode.
//	env shape.Env: The type-parameter binding environment.
//	scope *shape.Scope: The enclosing scope for delayed references; may be nil.
//
// Returns:
//
//	value.Value: The typed value.
//	error: See Decode.
func DecodeIn(s *shape.Shape, v value.Value, env shape.Env, scope *shape.Scope) (value.Value, error) {
	s, rerr := shape.Resolve(s, env, scope)
	if rerr != nil {
		return value.Value{}, rerr
	}

	// A registered decode hook preempts all structural dispatch; its result
	// is returned uninspected.
	if s.DecodeHook != nil {
		return s.DecodeHook(v)
	}

	switch s.Kind {
	case shape.KindBool, shape.KindInt, shape.KindFloat, shape.KindString, shape.KindNull:
		return decodePrimitive(s, v)
	case shape.KindList:
		return decodeList(s, v, env, scope)
	case shape.KindSet:
		return decodeSet(s, v, env, scope)
	case shape.KindTuple:
		return decodeTuple(s, v, env, scope)
	case shape.KindMap:
		return decodeMap(s, v, env, scope)
	case shape.KindRecord:
		return decodeRecord(s, v, env, scope)
	case shape.KindUnion:
		return decodeUnion(s, v, env, scope)
	case shape.KindEnum:
		return decodeEnum(s, v)
	case shape.KindDateTime:
		return decodeInstant(s, v)
	default:
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch(string(s.Kind), string(v.Kind())))
	}
}

// primitiveShapeKind maps a value's runtime kind to the primitive shape kind
// it satisfies, if any.
func primitiveShapeKind(k value.Kind) (shape.Kind, bool) {
	switch k {
	case value.ValueNull:
		return shape.KindNull, true
	case value.ValueBool:
		return shape.KindBool, true
	case value.ValueInt:
		return shape.KindInt, true
	case value.ValueFloat:
		return shape.KindFloat, true
	case value.ValueString:
		return shape.KindString, true
	default:
		return "", false
	}
}

// decodePrimitive succeeds iff the value's runtime kind exactly matches the
// primitive kind; the value passes through unchanged. There is no implicit
// numeric coercion between int and float.
func decodePrimitive(s *shape.Shape, v value.Value) (value.Value, error) {
	pk, ok := primitiveShapeKind(v.Kind())
	if !ok || pk != s.Kind {
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch(string(s.Kind), string(v.Kind())))
	}
	return v, nil
}

func decodeList(s *shape.Shape, v value.Value, env shape.Env, scope *shape.Scope) (value.Value, error) {
	if v.Kind() != value.ValueArray {
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch("array", string(v.Kind())))
	}
	items, _ := v.Items()
	out := make([]value.Value, len(items))
	for i, item := range items {
		dv, err := DecodeIn(s.Elem, item, env, scope)
		if err != nil {
			return value.Value{}, err
		}
		out[i] = dv
	}
	return value.NewArray(out), nil
}

// decodeSet decodes array elements like a list but collapses elements that
// are equal after decoding; element order is not guaranteed.
func decodeSet(s *shape.Shape, v value.Value, env shape.Env, scope *shape.Scope) (value.Value, error) {
	if v.Kind() != value.ValueArray {
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch("array", string(v.Kind())))
	}
	items, _ := v.Items()
	out := make([]value.Value, 0, len(items))
	buckets := make(map[uint64][]value.Value, len(items))
	for _, item := range items {
		dv, err := DecodeIn(s.Elem, item, env, scope)
		if err != nil {
			return value.Value{}, err
		}
		fp := dv.Fingerprint()
		dup := false
		for _, seen := range buckets[fp] {
			if dv.Equal(seen) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		buckets[fp] = append(buckets[fp], dv)
		out = append(out, dv)
	}
	return value.NewSet(out), nil
}

// decodeTuple zips positional shapes with array elements. The array must
// carry at least as many elements as the tuple has positions; surplus
// elements are ignored.
func decodeTuple(s *shape.Shape, v value.Value, env shape.Env, scope *shape.Scope) (value.Value, error) {
	if v.Kind() != value.ValueArray {
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch("array", string(v.Kind())))
	}
	items, _ := v.Items()
	if len(items) < len(s.Items) {
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch(
			fmt.Sprintf("array of at least %d elements", len(s.Items)),
			fmt.Sprintf("array of %d elements", len(items))))
	}
	out := make([]value.Value, len(s.Items))
	for i, ps := range s.Items {
		dv, err := DecodeIn(ps, items[i], env, scope)
		if err != nil {
			return value.Value{}, err
		}
		out[i] = dv
	}
	return value.NewTuple(out), nil
}

// decodeMap decodes every entry value under the value shape; keys pass
// through unchanged as strings.
func decodeMap(s *shape.Shape, v value.Value, env shape.Env, scope *shape.Scope) (value.Value, error) {
	entries, ok := v.Object()
	if !ok {
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch("object", string(v.Kind())))
	}
	out := make(map[string]value.Value, len(entries))
	for k, item := range entries {
		dv, err := DecodeIn(s.Elem, item, env, scope)
		if err != nil {
			return value.Value{}, err
		}
		out[k] = dv
	}
	return value.NewObject(out), nil
}

// decodeRecord decodes every declared field, in declared order, from a JSON
// object. All fields are required; optionality is a union with null on the
// field's shape, never an absent key.
func decodeRecord(s *shape.Shape, v value.Value, env shape.Env, scope *shape.Scope) (value.Value, error) {
	entries, ok := v.Object()
	if !ok {
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch("object", string(v.Kind())))
	}
	fieldEnv, berr := s.Bind(env, scope)
	if berr != nil {
		return value.Value{}, berr
	}
	inner := shape.EnterRecord(scope, s)
	fields := make([]value.Field, len(s.Fields))
	for i, f := range s.Fields {
		fv, present := entries[f.Name]
		if !present {
			return value.Value{}, NewError(v, s, serr.ErrFieldMissing(f.Name, s.Name))
		}
		dv, err := DecodeIn(f.Shape, fv, fieldEnv, inner)
		if err != nil {
			return value.Value{}, err
		}
		fields[i] = value.Field{Name: f.Name, Value: dv}
	}
	return value.NewRecord(s.Name, fields), nil
}

// decodeUnion tries each alternative in declared order and returns the first
// success. When the value's runtime kind already matches a primitive
// alternative, the value is returned directly without attempting the other
// alternatives. Declaration order is the shape author's tie-break: two
// alternatives sharing a runtime kind resolve to whichever is declared first.
func decodeUnion(s *shape.Shape, v value.Value, env shape.Env, scope *shape.Scope) (value.Value, error) {
	if pk, ok := primitiveShapeKind(v.Kind()); ok {
		for _, alt := range s.Items {
			if alt.Kind == pk {
				return v, nil
			}
		}
	}
	var last error
	for _, alt := range s.Items {
		out, err := DecodeIn(alt, v, env, scope)
		if err == nil {
			return out, nil
		}
		if serr.IsConfig(err) {
			// Malformed declaration, not a nonmatching alternative.
			return value.Value{}, err
		}
		last = err
	}
	if last == nil {
		return value.Value{}, NewError(v, s, serr.ErrNoUnionAlternative)
	}
	return value.Value{}, NewError(v, s, fmt.Errorf("%w: %w", serr.ErrNoUnionAlternative, last))
}

// decodeEnum matches a string or integer value against the declared backing
// values and yields the corresponding named member.
func decodeEnum(s *shape.Shape, v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.ValueString:
		sv, _ := v.String()
		for _, m := range s.Members {
			if !m.IntBacked && m.Str == sv {
				return value.NewEnum(s.Name, m.Name, value.NewString(m.Str)), nil
			}
		}
	case value.ValueInt:
		iv, _ := v.Int64()
		for _, m := range s.Members {
			if m.IntBacked && m.Int == iv {
				return value.NewEnum(s.Name, m.Name, value.NewInt(m.Int)), nil
			}
		}
	default:
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch("string or int", string(v.Kind())))
	}
	return value.Value{}, NewError(v, s, fmt.Errorf("%w: no member of %s has this backing value",
		serr.ErrTypeMismatch, s.Name))
}
