package cmdutil

import (
	"errors"
	"fmt"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/diagnostics"
	"github.com/studiokit/composer/internal/output"
)

// PrintValidationError prints a validation error in a user-friendly format.
// When the error is a catalog SchemaError with CUE details, it prints a
// short summary line followed by the structured CUE error output. Other
// errors fall back to the standard key-value log format.
func PrintValidationError(msg string, err error) {
	var schemaErr *catalog.SchemaError
	if errors.As(err, &schemaErr) && schemaErr.Details != "" {
		output.Error(fmt.Sprintf("%s: %s", msg, schemaErr.Path))
		output.Details(schemaErr.Details)
		return
	}
	output.Error(msg, "error", err)
}

// WriteQueueLog writes one line per queued item, always shown. Item
// parameters and their sources follow at debug level.
func WriteQueueLog(queue *core.Queue) {
	for _, gen := range queue.Items() {
		var kind core.TemplateKind
		if gen.Template != nil {
			kind = gen.Template.Kind
		}
		output.Info(output.FormatItemLine(kind, gen.Name, gen.TemplateIdentity()))

		itemLog := output.ItemLogger(gen.Name)
		for _, name := range gen.ParameterNames() {
			itemLog.Debug("parameter",
				"name", name,
				"value", gen.Parameters[name],
				"source", gen.ParameterSource(name),
			)
		}
	}
}

// PrintIssues summarizes best-effort validation issues. Each issue has
// already been logged as it was reported.
func PrintIssues(issues []diagnostics.Issue, dropped uint64) {
	if len(issues) == 0 && dropped == 0 {
		return
	}
	output.Warn(fmt.Sprintf("composed with %d validation issue(s)", len(issues)+int(dropped)),
		"dropped", dropped)
}
