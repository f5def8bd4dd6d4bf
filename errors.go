package challengedb

import "errors"

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("not found")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when a request digest does not verify
	ErrUnauthorized = errors.New("unauthorized")
)

// InputError describes a rejected input field. It matches ErrInvalidInput
// under errors.Is.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Cause returns the innermost error of a chain built with single %w wraps.
// The call-site prefixes added on the way up are dropped, leaving the text
// of the error that started the chain. A nil error yields nil.
func Cause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
