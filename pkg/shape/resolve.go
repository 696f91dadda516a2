package shape

import (
	"fmt"

	serr "github.com/dunkyl/slymastodon/pkg/err"
)

// Resolve turns a possibly-symbolic shape reference into a concrete,
// inspectable descriptor. Concrete shapes pass through unchanged;
// type-parameter references are looked up in the environment; delayed
// symbolic references are looked up in the enclosing scope. Resolution is
// lazy per reference and never walks into fields, so self-referential
// shapes are safe.
//
// Parameters:
//
//	ref *Shape: The shape reference to resolve.
//	env Env: The current type-parameter binding environment.
//	scope *Scope: The enclosing scope for symbolic names; may be nil.
//
// Returns:
//
//	*Shape: The concrete shape descriptor.
//	error: serr.ErrUnboundTypeParam or serr.ErrUnresolvedSymbol on failure;
//	       both indicate a malformed shape declaration, not bad data.
func Resolve(ref *Shape, env Env, scope *Scope) (*Shape, error) {
	for {
		switch ref.Kind {
		case KindTypeParam:
			bound, ok := env.Lookup(ref.Name)
			if !ok {
				return nil, serr.ErrUnboundParam(ref.Name)
			}
			ref = bound
		case KindRef:
			target, ok := scope.Lookup(ref.Name)
			if !ok {
				return nil, serr.ErrUnresolvedRef(ref.Name)
			}
			ref = target
		default:
			return ref, nil
		}
	}
}

// Bind computes the environment for decoding the fields of a record shape.
// For a generic record instantiation, each declared parameter is bound to the
// corresponding argument shape; arguments are first resolved under the
// current environment so that parameters of an enclosing instantiation thread
// through. Non-generic records return the environment unchanged.
//
// Parameters:
//
//	env Env: The environment in force at the record.
//	scope *Scope: The enclosing scope for resolving argument refs.
//
// Returns:
//
//	Env: The environment for the record's fields.
//	error: A configuration error when arity mismatches or an argument cannot
//	       be resolved.
func (s *Shape) Bind(env Env, scope *Scope) (Env, error) {
	if len(s.Args) == 0 {
		if len(s.Params) > 0 {
			// Uninstantiated generic: field shapes will fail on their
			// parameter lookups with ErrUnboundTypeParam, which carries
			// the offending name. Nothing to bind here.
			return env, nil
		}
		return env, nil
	}
	if len(s.Args) != len(s.Params) {
		return Env{}, fmt.Errorf("%w: %s expects %d type arguments, got %d",
			serr.ErrUnboundTypeParam, s.Name, len(s.Params), len(s.Args))
	}
	resolved := make([]*Shape, len(s.Args))
	for i, arg := range s.Args {
		r, rerr := Resolve(arg, env, scope)
		if rerr != nil {
			return Env{}, rerr
		}
		resolved[i] = r
	}
	return env.Extend(s.Params, resolved), nil
}
