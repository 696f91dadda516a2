// Package shape describes target types for shape-directed JSON decoding and
// resolves symbolic references to concrete descriptors.
package shape

import (
	"strings"

	"github.com/dunkyl/slymastodon/pkg/value"
)

// Kind represents the structural kind of a shape descriptor.
type Kind string

const (
	KindBool      Kind = "bool"
	KindInt       Kind = "int"
	KindFloat     Kind = "float"
	KindString    Kind = "string"
	KindNull      Kind = "null"
	KindEnum      Kind = "enum"
	KindRecord    Kind = "record"
	KindList      Kind = "list"
	KindSet       Kind = "set"
	KindTuple     Kind = "tuple"
	KindMap       Kind = "map"
	KindUnion     Kind = "union"
	KindTypeParam Kind = "typeparam"
	KindRef       Kind = "ref"
	KindDateTime  Kind = "datetime"
)

// Field is one named, ordered, required member of a record shape.
type Field struct {
	Name  string
	Shape *Shape
}

// Member is one named member of an enumeration, backed by either a string or
// an integer value.
type Member struct {
	Name      string
	Str       string
	Int       int64
	IntBacked bool
}

// Hook is a custom decode function a record type may register. When present
// it preempts all structural dispatch; its result is returned uninspected.
type Hook func(value.Value) (value.Value, error)

// Shape is a tagged-variant description of a target type.
//
// Fields:
//
//	Kind Kind: The structural kind (discriminator).
//	Name string: Record or enum name; target name for KindTypeParam/KindRef.
//	Elem *Shape: Element shape for KindList, KindSet, and KindMap values.
//	Items []*Shape: Positional shapes for KindTuple; alternatives for KindUnion.
//	Fields []Field: Ordered required fields for KindRecord.
//	Params []string: Declared type-parameter names of a generic record.
//	Args []*Shape: Concrete arguments of a generic record instantiation.
//	Members []Member: Declared members for KindEnum.
//	DecodeHook Hook: Optional custom decode hook (records only).
//	Defs *Scope: Defining context for delayed refs inside this record.
//
// Shapes are immutable once published and safely shareable across concurrent
// decode calls. Descriptors may be cyclic (a record field may point back to
// the record); decoding stays finite because JSON data is.
type Shape struct {
	Kind       Kind
	Name       string
	Elem       *Shape
	Items      []*Shape
	Fields     []Field
	Params     []string
	Args       []*Shape
	Members    []Member
	DecodeHook Hook
	Defs       *Scope
}

// F builds a record field. Shorthand for declaring entity catalogs.
func F(name string, s *Shape) Field {
	return Field{Name: name, Shape: s}
}

// NewBool creates the boolean primitive shape.
func NewBool() *Shape { return &Shape{Kind: KindBool} }

// NewInt creates the integer primitive shape.
func NewInt() *Shape { return &Shape{Kind: KindInt} }

// NewFloat creates the float primitive shape.
func NewFloat() *Shape { return &Shape{Kind: KindFloat} }

// NewString creates the string primitive shape.
func NewString() *Shape { return &Shape{Kind: KindString} }

// NewNull creates the null primitive shape.
func NewNull() *Shape { return &Shape{Kind: KindNull} }

// NewDateTime creates the temporal shape, which accepts an ISO-8601 string or
// a POSIX epoch number.
func NewDateTime() *Shape { return &Shape{Kind: KindDateTime} }

// NewList creates a homogeneous, order-preserving sequence shape.
func NewList(elem *Shape) *Shape {
	return &Shape{Kind: KindList, Elem: elem}
}

// NewSet creates a duplicate-collapsing, order-insensitive collection shape.
func NewSet(elem *Shape) *Shape {
	return &Shape{Kind: KindSet, Elem: elem}
}

// NewMap creates a string-keyed mapping shape with the given value shape.
func NewMap(elem *Shape) *Shape {
	return &Shape{Kind: KindMap, Elem: elem}
}

// NewTuple creates a fixed positional shape; one shape per position.
func NewTuple(items ...*Shape) *Shape {
	return &Shape{Kind: KindTuple, Items: items}
}

// NewUnion creates an ordered-alternative shape. Declaration order is a
// semantic tie-break: the first alternative that decodes wins.
func NewUnion(alts ...*Shape) *Shape {
	return &Shape{Kind: KindUnion, Items: alts}
}

// Optional wraps a shape in a union with null. This is how field optionality
// is expressed; records have no defaulted fields at the decode level.
func Optional(s *Shape) *Shape {
	return NewUnion(s, NewNull())
}

// NewTypeParam creates a reference to a type parameter that must be bound in
// the environment at decode time.
func NewTypeParam(name string) *Shape {
	return &Shape{Kind: KindTypeParam, Name: name}
}

// NewRef creates a delayed symbolic reference resolved against the enclosing
// scope at decode time. Used for recursive and forward-declared shapes.
func NewRef(name string) *Shape {
	return &Shape{Kind: KindRef, Name: name}
}

// NewEnum creates an enumeration shape from its declared members.
func NewEnum(name string, members ...Member) *Shape {
	return &Shape{Kind: KindEnum, Name: name, Members: members}
}

// StrMember declares a string-backed enum member.
func StrMember(name, backing string) Member {
	return Member{Name: name, Str: backing}
}

// IntMember declares an integer-backed enum member.
func IntMember(name string, backing int64) Member {
	return Member{Name: name, Int: backing, IntBacked: true}
}

// NewRecord creates a structured record shape with a fixed, ordered list of
// required fields.
func NewRecord(name string, fields ...Field) *Shape {
	return &Shape{Kind: KindRecord, Name: name, Fields: fields}
}

// NewGenericRecord creates a record shape that declares type parameters. The
// record must be instantiated with concrete arguments before decoding.
func NewGenericRecord(name string, params []string, fields ...Field) *Shape {
	return &Shape{Kind: KindRecord, Name: name, Params: params, Fields: fields}
}

// Instantiate returns a copy of a generic record shape applied to concrete
// type arguments. The receiver is left untouched.
//
// Parameters:
//
//	args ...*Shape: One argument shape per declared parameter, in order.
//
// Returns:
//
//	*Shape: The instantiated record shape.
func (s *Shape) Instantiate(args ...*Shape) *Shape {
	cp := *s
	cp.Args = args
	return &cp
}

// WithHook returns a copy of a record shape carrying a custom decode hook.
// This is the registration mechanism by which a record declares bespoke
// parsing that preempts structural dispatch.
func (s *Shape) WithHook(h Hook) *Shape {
	cp := *s
	cp.DecodeHook = h
	return &cp
}

// JSON returns the shape of arbitrary JSON: a self-referential union of all
// JSON kinds. The returned descriptor is cyclic.
func JSON() *Shape {
	u := &Shape{Kind: KindUnion, Name: "Json"}
	u.Items = []*Shape{
		NewNull(), NewBool(), NewInt(), NewFloat(), NewString(),
		NewList(u), NewMap(u),
	}
	return u
}

// IsPrimitive returns true for the exact-kind-match primitives.
func (s *Shape) IsPrimitive() bool {
	switch s.Kind {
	case KindBool, KindInt, KindFloat, KindString, KindNull:
		return true
	}
	return false
}

// IsRecord returns true if the shape is a structured record.
func (s *Shape) IsRecord() bool { return s.Kind == KindRecord }

// IsUnion returns true if the shape is a union of alternatives.
func (s *Shape) IsUnion() bool { return s.Kind == KindUnion }

// IsSymbolic returns true if the shape must be resolved before dispatch.
func (s *Shape) IsSymbolic() bool {
	return s.Kind == KindTypeParam || s.Kind == KindRef
}

// IsGeneric returns true if the record declares type parameters.
func (s *Shape) IsGeneric() bool {
	return s.Kind == KindRecord && len(s.Params) > 0
}

// IsEqual checks if this shape is structurally equal to another. Cyclic
// descriptors are handled by treating an already-visited pair as equal.
//
// Parameters:
//
//	other *Shape: The shape to compare against.
//
// Returns:
//
//	bool: True if the shapes are equal.
func (s *Shape) IsEqual(other *Shape) bool {
	return s.isEqual(other, make(map[[2]*Shape]bool))
}

func (s *Shape) isEqual(other *Shape, seen map[[2]*Shape]bool) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	pair := [2]*Shape{s, other}
	if seen[pair] {
		return true
	}
	seen[pair] = true
	if s.Kind != other.Kind || s.Name != other.Name {
		return false
	}
	switch s.Kind {
	case KindList, KindSet, KindMap:
		return s.Elem.isEqual(other.Elem, seen)
	case KindTuple, KindUnion:
		if len(s.Items) != len(other.Items) {
			return false
		}
		for i := range s.Items {
			if !s.Items[i].isEqual(other.Items[i], seen) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(s.Fields) != len(other.Fields) ||
			len(s.Params) != len(other.Params) ||
			len(s.Args) != len(other.Args) {
			return false
		}
		for i := range s.Params {
			if s.Params[i] != other.Params[i] {
				return false
			}
		}
		for i := range s.Args {
			if !s.Args[i].isEqual(other.Args[i], seen) {
				return false
			}
		}
		for i := range s.Fields {
			if s.Fields[i].Name != other.Fields[i].Name ||
				!s.Fields[i].Shape.isEqual(other.Fields[i].Shape, seen) {
				return false
			}
		}
		return true
	case KindEnum:
		if len(s.Members) != len(other.Members) {
			return false
		}
		for i := range s.Members {
			if s.Members[i] != other.Members[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String returns a human-readable rendering of the shape, e.g.
// "list<int>" or "Post". Nested record bodies are elided past a small depth
// so cyclic descriptors render finitely.
func (s *Shape) String() string {
	return s.render(0)
}

const renderMaxDepth = 3

func (s *Shape) render(depth int) string {
	if s == nil {
		return "<nil>"
	}
	switch s.Kind {
	case KindBool, KindInt, KindFloat, KindString, KindNull, KindDateTime:
		return string(s.Kind)
	case KindEnum:
		return "enum " + s.Name
	case KindTypeParam:
		return s.Name
	case KindRef:
		return "'" + s.Name + "'"
	case KindList:
		return "list<" + s.Elem.render(depth+1) + ">"
	case KindSet:
		return "set<" + s.Elem.render(depth+1) + ">"
	case KindMap:
		return "map<string, " + s.Elem.render(depth+1) + ">"
	case KindTuple:
		parts := make([]string, len(s.Items))
		for i, item := range s.Items {
			parts[i] = item.render(depth + 1)
		}
		return "tuple<" + strings.Join(parts, ", ") + ">"
	case KindUnion:
		if s.Name != "" {
			return s.Name
		}
		if depth > renderMaxDepth {
			return "union"
		}
		parts := make([]string, len(s.Items))
		for i, item := range s.Items {
			parts[i] = item.render(depth + 1)
		}
		return strings.Join(parts, " | ")
	case KindRecord:
		name := s.Name
		if name == "" {
			name = "record"
		}
		if len(s.Args) > 0 {
			parts := make([]string, len(s.Args))
			for i, a := range s.Args {
				parts[i] = a.render(depth + 1)
			}
			name += "<" + strings.Join(parts, ", ") + ">"
		}
		if s.Name != "" || depth > renderMaxDepth {
			return name
		}
		parts := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			parts[i] = f.Name + ": " + f.Shape.render(depth+1)
		}
		return name + "{" + strings.Join(parts, ", ") + "}"
	default:
		return "invalid"
	}
}
