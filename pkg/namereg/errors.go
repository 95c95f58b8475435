package namereg

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a name with no current binding.
type NotFoundError struct {
	// Key is the name that failed to resolve.
	Key string
	// Cause is set when the lookup gave up waiting (see WaitFor).
	Cause error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("name registrar: %q not found: %v", e.Key, e.Cause)
	}
	return fmt.Sprintf("name registrar: %q not found", e.Key)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Unwrap returns the cause, if any.
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// TypeError reports a binding whose dynamic type differs from the one
// requested through GetAs.
type TypeError struct {
	Key  string
	Want string
	Got  string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("name registrar: %q is %s, not %s", e.Key, e.Got, e.Want)
}
