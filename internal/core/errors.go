package core

import (
	"errors"
	"fmt"
	"strings"
)

// IssueKind names a validation failure raised while composing a plan.
type IssueKind string

const (
	MissingDependencyTemplate      IssueKind = "MissingDependencyTemplate"
	InvalidDependencyKind          IssueKind = "InvalidDependencyKind"
	DependencyMustBeSingleInstance IssueKind = "DependencyMustBeSingleInstance"
	MissingLayoutTemplate          IssueKind = "MissingLayoutTemplate"
	InvalidLayoutKind              IssueKind = "InvalidLayoutKind"
	MissingProjectTemplate         IssueKind = "MissingProjectTemplate"
	UnsupportedFramework           IssueKind = "UnsupportedFramework"
	InvalidCompositionFilter       IssueKind = "InvalidCompositionFilter"
)

// Sentinel errors, one per issue kind, for use with errors.Is.
var (
	ErrMissingDependencyTemplate      = errors.New("dependency template not found")
	ErrInvalidDependencyKind          = errors.New("dependency must be a page or feature")
	ErrDependencyMustBeSingleInstance = errors.New("dependency must not allow multiple instances")
	ErrMissingLayoutTemplate          = errors.New("layout template not found")
	ErrInvalidLayoutKind              = errors.New("layout entry must be a page or feature")
	ErrMissingProjectTemplate         = errors.New("project template not found")
	ErrUnsupportedFramework           = errors.New("template does not support framework")
	ErrInvalidCompositionFilter       = errors.New("invalid composition filter")
)

var sentinels = map[IssueKind]error{
	MissingDependencyTemplate:      ErrMissingDependencyTemplate,
	InvalidDependencyKind:          ErrInvalidDependencyKind,
	DependencyMustBeSingleInstance: ErrDependencyMustBeSingleInstance,
	MissingLayoutTemplate:          ErrMissingLayoutTemplate,
	InvalidLayoutKind:              ErrInvalidLayoutKind,
	MissingProjectTemplate:         ErrMissingProjectTemplate,
	UnsupportedFramework:           ErrUnsupportedFramework,
	InvalidCompositionFilter:       ErrInvalidCompositionFilter,
}

// Sentinel returns the sentinel error for the kind.
func (k IssueKind) Sentinel() error {
	if err, ok := sentinels[k]; ok {
		return err
	}
	return fmt.Errorf("validation issue %s", string(k))
}

// ValidationMode selects how validation failures propagate.
type ValidationMode string

const (
	// ModeStrict aborts the current call on the first validation failure.
	ModeStrict ValidationMode = "strict"

	// ModeBestEffort reports failures to diagnostics and skips the item.
	ModeBestEffort ValidationMode = "best-effort"
)

// ParseValidationMode parses a mode name. Empty input selects best-effort.
func ParseValidationMode(s string) (ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "best-effort", "besteffort", "lenient":
		return ModeBestEffort, nil
	case "strict":
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("unknown validation mode %q; valid modes: strict, best-effort", s)
	}
}

// ValidationError describes one validation failure.
type ValidationError struct {
	// Kind classifies the failure.
	Kind IssueKind

	// Template is the identity of the template being resolved, if any.
	Template string

	// Reference is the identity or group identity that failed to resolve.
	Reference string

	// Framework is the active framework.
	Framework string

	// Cause is an underlying error, such as a filter parse error.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Kind.Sentinel().Error())
	if e.Reference != "" {
		fmt.Fprintf(&b, " (%q", e.Reference)
		if e.Template != "" {
			fmt.Fprintf(&b, " referenced by %q", e.Template)
		}
		if e.Framework != "" {
			fmt.Fprintf(&b, ", framework %q", e.Framework)
		}
		b.WriteString(")")
	} else if e.Template != "" {
		fmt.Fprintf(&b, " (template %q)", e.Template)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind.Sentinel(), e.Cause}
	}
	return []error{e.Kind.Sentinel()}
}
