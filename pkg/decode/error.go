package decode

import (
	"fmt"

	"github.com/dunkyl/slymastodon/pkg/shape"
	"github.com/dunkyl/slymastodon/pkg/value"
)

// Error is a decode failure. It carries the offending JSON value and the
// shape it failed to match, produced at the point of failure. Nested causes
// wrap the sentinel errors of pkg/err, so callers can classify failures with
// errors.Is.
type Error struct {
	Value value.Value
	Shape *shape.Shape
	cause error
}

// NewError builds a decode error for a value/shape pair.
//
// Parameters:
//
//	v value.Value: The offending value.
//	s *shape.Shape: The shape that was not matched.
//	cause error: The underlying sentinel or nested failure.
//
// Returns:
//
//	*Error: The decode error.
func NewError(v value.Value, s *shape.Shape, cause error) *Error {
	return &Error{Value: v, Shape: s, cause: cause}
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot decode %s as %s: %v", renderValue(e.Value), e.Shape, e.cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

const renderValueLimit = 120

// renderValue gives a short JSON rendering of a value for error messages.
func renderValue(v value.Value) string {
	b, err := v.MarshalJSON()
	if err != nil {
		return string(v.Kind())
	}
	if len(b) > renderValueLimit {
		return string(b[:renderValueLimit]) + "..."
	}
	return string(b)
}
