package shape

// Scope is an explicit symbol table from type name to shape descriptor, built
// once per defining context. Delayed symbolic references are evaluated
// against a Scope; names are never evaluated as code.
//
// A Scope formed while decoding chains three sources, checked in order: the
// names defined directly on it (record types encountered on the current
// resolution path), the defining context of the nearest enclosing record
// (defs), and the outer resolution path (parent).
type Scope struct {
	parent *Scope
	defs   *Scope
	names  map[string]*Shape
}

// NewScope creates an empty scope chained to an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, names: make(map[string]*Shape)}
}

// Define binds a type name in this scope, shadowing any binding of the same
// name further up the chain. Scopes are not safe for concurrent mutation;
// build and publish them before decoding starts.
func (s *Scope) Define(name string, sh *Shape) {
	s.names[name] = sh
}

// Lookup resolves a type name against the scope chain.
//
// Parameters:
//
//	name string: The symbolic type name to resolve.
//
// Returns:
//
//	*Shape: The bound shape, if any.
//	bool: True when the name is bound somewhere in the chain.
func (s *Scope) Lookup(name string) (*Shape, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sh, ok := cur.names[name]; ok {
			return sh, true
		}
		if cur.defs != nil {
			if sh, ok := cur.defs.Lookup(name); ok {
				return sh, true
			}
		}
	}
	return nil, false
}

// EnterRecord returns the scope visible to references inside r's fields: r's
// own name first (so a record can refer to itself), then r's defining
// context, then the outer resolution path. The outer scope is not mutated.
//
// Parameters:
//
//	outer *Scope: The scope of the enclosing resolution path; may be nil.
//	r *Shape: The record being entered.
//
// Returns:
//
//	*Scope: The extended scope for decoding r's fields.
func EnterRecord(outer *Scope, r *Shape) *Scope {
	sc := &Scope{parent: outer, defs: r.Defs, names: make(map[string]*Shape, 1)}
	if r.Name != "" {
		sc.names[r.Name] = r
	}
	return sc
}
