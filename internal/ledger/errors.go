package ledger

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input: an empty name, a non-positive
// rate or duration, an unparseable date.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a project or session id that does not resolve
type NotFoundError struct {
	Kind string // "project" or "session"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// InvariantError reports an operation that would violate a structural
// invariant, such as deleting the last remaining project
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

// IsInvariant reports whether err is an InvariantError
func IsInvariant(err error) bool {
	var i *InvariantError
	return errors.As(err, &i)
}
