package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a catalog, selection or config failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a catalog, template or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed command-line input.
	ErrInvalidInput = errors.New("invalid input")
)
