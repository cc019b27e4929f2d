// Package domainerr provides the field-tagged validation errors raised by the
// business layer before anything is persisted.
package domainerr

import (
	"errors"
	"fmt"
)

// The set of codes a validation failure can carry.
var (
	InvalidInput    = newCode("INVALID_INPUT")
	InvalidFileType = newCode("INVALID_FILE_TYPE")
)

// =============================================================================

// Code represents the kind of validation failure.
type Code struct {
	value string
}

func newCode(code string) Code {
	return Code{code}
}

// String returns the name of the code.
func (c Code) String() string {
	return c.value
}

// Equal provides support for the go-cmp package and testing.
func (c Code) Equal(c2 Code) bool {
	return c.value == c2.value
}

// =============================================================================

// Error is a validation failure bound to the submitted field that caused it.
type Error struct {
	Code    Code
	Field   string
	Message string
	Err     error
}

// New constructs a field-tagged error.
func New(code Code, field string, message string) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: message,
	}
}

// Wrap constructs a field-tagged error that keeps the underlying cause.
func Wrap(code Code, field string, message string, err error) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %s", e.Code, e.Field, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a target *Error with the same code. A target with an empty
// Field matches any field.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	if !e.Code.Equal(t.Code) {
		return false
	}

	return t.Field == "" || t.Field == e.Field
}

// =============================================================================

// IsCode reports whether any error in err's tree carries the code.
func IsCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// Fields returns the field names of every domain error in err's tree, in
// the order they were joined.
func Fields(err error) []string {
	all := All(err)

	fields := make([]string, len(all))
	for i, de := range all {
		fields[i] = de.Field
	}

	return fields
}

// All returns every domain error in err's tree, in the order they were joined.
func All(err error) []*Error {
	var all []*Error

	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}

		if de, ok := err.(*Error); ok {
			all = append(all, de)
			return
		}

		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range x.Unwrap() {
				walk(e)
			}

		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}

	walk(err)

	return all
}
