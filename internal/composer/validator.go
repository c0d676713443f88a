package composer

import (
	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/diagnostics"
	"github.com/studiokit/composer/internal/output"
)

// Validator applies the validation policy to issues found while composing.
type Validator struct {
	mode     core.ValidationMode
	reporter diagnostics.Reporter
}

// NewValidator creates a Validator. A nil reporter discards issues.
func NewValidator(mode core.ValidationMode, reporter diagnostics.Reporter) *Validator {
	if reporter == nil {
		reporter = diagnostics.Discard
	}
	if mode == "" {
		mode = core.ModeBestEffort
	}
	return &Validator{mode: mode, reporter: reporter}
}

// Mode returns the validation mode.
func (v *Validator) Mode() core.ValidationMode {
	return v.mode
}

// Check returns err in strict mode. In best-effort mode it reports err and
// returns nil, and the caller skips the offending item.
func (v *Validator) Check(err *core.ValidationError) error {
	if err == nil {
		return nil
	}
	if v.mode == core.ModeStrict {
		return err
	}
	v.reporter.Report(diagnostics.NewIssue(err))
	output.Debug("skipping invalid item", "kind", err.Kind, "template", err.Template, "reference", err.Reference)
	return nil
}
