// Package err defines common errors for the shape-directed decoding engine.
package err

import (
	"errors"
	"fmt"
)

// Decode failures. These are expected, data-dependent conditions: the caller
// handed well-formed JSON that simply does not conform to the target shape.
var (
	ErrTypeMismatch       = errors.New("decode: value kind does not match shape")
	ErrMissingField       = errors.New("decode: required record field absent")
	ErrNoUnionAlternative = errors.New("decode: no union alternative matched")
)

// ErrFieldMissing reports that a required record field is absent from the
// input object.
//
// Parameters:
//
//	field string: The missing field name.
//	record string: The record type name, possibly empty for anonymous records.
//
// Returns:
//
//	error: The formatted error, wrapping ErrMissingField.
func ErrFieldMissing(field, record string) error {
	if record == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return fmt.Errorf("%w: %s in %s", ErrMissingField, field, record)
}

// ErrKindMismatch reports that the runtime kind of the input value does not
// match the kind the shape requires.
//
// Parameters:
//
//	want string: Description of the expected kind.
//	got string: Description of the value's actual kind.
//
// Returns:
//
//	error: The formatted error, wrapping ErrTypeMismatch.
func ErrKindMismatch(want, got string) error {
	return fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, want, got)
}
