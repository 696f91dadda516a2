package err

import (
	"errors"
	"fmt"
)

// Shape configuration errors. Unlike decode failures these indicate a
// malformed shape declaration, not bad input data; they are never absorbed by
// union alternative trying and should not be retried.
var (
	ErrUnboundTypeParam = errors.New("shape: unbound type parameter")
	ErrUnresolvedSymbol = errors.New("shape: unresolved symbolic reference")
)

// ErrUnboundParam reports that a type-parameter name has no binding in the
// current environment.
func ErrUnboundParam(name string) error {
	return fmt.Errorf("%w: %s", ErrUnboundTypeParam, name)
}

// ErrUnresolvedRef reports that a delayed symbolic reference could not be
// found in any enclosing scope.
func ErrUnresolvedRef(name string) error {
	return fmt.Errorf("%w: %s", ErrUnresolvedSymbol, name)
}

// IsConfig reports whether e stems from a malformed shape declaration rather
// than from nonconforming input data.
//
// Parameters:
//
//	e error: The error to classify.
//
// Returns:
//
//	bool: True for ErrUnboundTypeParam and ErrUnresolvedSymbol chains.
func IsConfig(e error) bool {
	return errors.Is(e, ErrUnboundTypeParam) || errors.Is(e, ErrUnresolvedSymbol)
}
