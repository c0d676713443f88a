// Package errors provides sentinel errors and detailed, hinted errors for
// the composer CLI.
package errors

import (
	"fmt"
	"strings"
)

// DetailError is an error with the catalog context needed to act on it.
type DetailError struct {
	// Type is the error category, e.g. "not found".
	Type string

	// Message describes the failure.
	Message string

	// Location is the catalog, selection or config file involved.
	Location string

	// Field is the offending key for schema errors.
	Field string

	// Template is the catalog template identity involved.
	Template string

	// Framework is the framework the template was resolved for.
	Framework string

	// Hint suggests what to do next.
	Hint string

	// Cause is the underlying error, usually a sentinel.
	Cause error
}

// Error renders the error as a short block:
//
//	Error: <type>
//	  Location: ...
//	  Template: ...
//
//	  <message>
//
//	Hint: ...
func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", e.Type)

	for _, kv := range [][2]string{
		{"Location", e.Location},
		{"Field", e.Field},
		{"Template", e.Template},
		{"Framework", e.Framework},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&b, "  %s: %s\n", kv[0], kv[1])
		}
	}

	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewTemplateNotFoundError reports a template identity that no template of
// the catalog at catalogPath provides for framework.
func NewTemplateNotFoundError(identity, framework, catalogPath string) error {
	return &DetailError{
		Type:      "not found",
		Message:   "no catalog template matches this identity and framework",
		Location:  catalogPath,
		Template:  identity,
		Framework: framework,
		Hint:      "run 'composer catalog list' to see available templates",
		Cause:     ErrNotFound,
	}
}

// NewInvalidInputError creates an invalid input error with a hint.
func NewInvalidInputError(message, hint string) error {
	return &DetailError{
		Type:    "invalid input",
		Message: message,
		Hint:    hint,
		Cause:   ErrInvalidInput,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
