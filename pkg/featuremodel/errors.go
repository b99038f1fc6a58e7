package featuremodel

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped in a NotFoundError) when a feature ID is
// absent from the model.
var ErrNotFound = errors.New("feature not found")

// ParseError reports a malformed or structurally invalid feature-model
// document. A ParseError is fatal to the load; no partial model is returned.
type ParseError struct {
	Source  string // File path or "<bytes>"
	Message string // What was wrong
	Cause   error  // Underlying error, if any
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error [source=%s]: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error [source=%s]: %s", e.Source, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new ParseError.
func NewParseError(source, message string, cause error) *ParseError {
	return &ParseError{
		Source:  source,
		Message: message,
		Cause:   cause,
	}
}

// NotFoundError reports a lookup of an ID that the model does not contain.
// It usually points at a referential-integrity problem in the model itself,
// such as a slot list naming a feature that does not exist.
type NotFoundError struct {
	ID int64
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("feature %d: %v", e.ID, ErrNotFound)
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
