package shape

// Env is a binding environment from type-parameter name to concrete shape.
// It is created empty at the root of a decode call, extended (never mutated
// in place) when decoding enters a generic record instantiation, and
// discarded when the call tree completes. Extension copies the underlying
// map, so sibling branches of a decode tree never observe each other's
// bindings.
type Env struct {
	bindings map[string]*Shape
}

// NewEnv creates an empty binding environment.
func NewEnv() Env {
	return Env{}
}

// Extend returns a new environment with the given parameter names bound to
// the given shapes. Existing bindings of the same names are shadowed. The
// receiver is left untouched.
//
// Parameters:
//
//	params []string: Parameter names to bind.
//	args []*Shape: Concrete shapes, one per name.
//
// Returns:
//
//	Env: The extended environment.
func (e Env) Extend(params []string, args []*Shape) Env {
	cp := make(map[string]*Shape, len(e.bindings)+len(params))
	for k, v := range e.bindings {
		cp[k] = v
	}
	for i, name := range params {
		cp[name] = args[i]
	}
	return Env{bindings: cp}
}

// Lookup resolves a type-parameter name.
//
// Returns:
//
//	*Shape: The bound shape, if any.
//	bool: True when the name is bound.
func (e Env) Lookup(name string) (*Shape, bool) {
	sh, ok := e.bindings[name]
	return sh, ok
}

// Len returns the number of bindings.
func (e Env) Len() int {
	return len(e.bindings)
}
