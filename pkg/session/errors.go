package session

import (
	"errors"
	"fmt"
)

var (
	// ErrFreePlacementClosed is returned when placing without an anchor once
	// the configuration already holds an instance.
	ErrFreePlacementClosed = errors.New("free placement is only possible in an empty configuration")

	// ErrNotAllowed is returned when a feature is not among the candidates
	// of the requested slot.
	ErrNotAllowed = errors.New("feature not allowed here")
)

// ScriptError reports a failing step of a session script.
type ScriptError struct {
	Step  int // zero-based; -1 for script level problems
	Cause error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("session script: %v", e.Cause)
	}
	return fmt.Sprintf("session script step %d: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Cause
}
