package services

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the referenced quote or contact does not exist
// (or has been soft-deleted).
var ErrNotFound = errors.New("entity not found")

// InvalidTransitionError reports a status change rejected by the transition
// graph. It carries the attempted pair so the API layer can surface it.
type InvalidTransitionError struct {
	Kind EntityKind
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s status transition from '%s' to '%s'", e.Kind, e.From, e.To)
}

// ValidationError reports malformed caller input, such as an unknown status
// value or an empty ID list.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// PersistenceError wraps an opaque storage failure. The cause is preserved
// for logging but callers only branch on the error type.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
