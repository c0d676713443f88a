package errors

// Exit codes returned by the composer binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates a catalog, selection or config failed
	// validation, or a strict-mode composition failed.
	ExitValidationError = 2

	// ExitNotFound indicates a catalog, template or file was not found.
	ExitNotFound = 3

	// ExitInvalidInput indicates malformed command-line input.
	ExitInvalidInput = 4
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed marks errors already reported to the user, so main does not
	// print them a second time.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitNotFound:
		return "Not Found"
	case ExitInvalidInput:
		return "Invalid Input"
	default:
		return "Unknown"
	}
}
