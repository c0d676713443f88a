package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/composer"
	"github.com/studiokit/composer/internal/config"
	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/diagnostics"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
)

// LoadCatalog loads the catalog at path behind a spinner. On failure it
// returns an *ExitError with the appropriate exit code.
func LoadCatalog(ctx context.Context, path string) (*catalog.Index, error) {
	idx, err := output.WithSpinner(ctx, "Loading catalog...", func() (*catalog.Index, error) {
		return catalog.Load(path)
	})
	if err != nil {
		var schemaErr *catalog.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			PrintValidationError("catalog validation failed", err)
			return nil, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
		case errors.Is(err, fs.ErrNotExist):
			return nil, &oerrors.ExitError{
				Code: oerrors.ExitNotFound,
				Err: oerrors.NewNotFoundError("catalog does not exist", path,
					"set --catalog, COMPOSER_CATALOG or 'catalog' in the config file"),
			}
		default:
			return nil, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
		}
	}

	output.Debug("catalog loaded", "path", path, "templates", idx.Len(), "version", idx.Version())
	return idx, nil
}

// NewComposer builds a Composer over idx using the resolved validation mode.
// Issues go to reporter, or are logged when reporter is nil.
func NewComposer(idx catalog.Catalog, cfg *config.Resolved, wizardVersion string, reporter diagnostics.Reporter) *composer.Composer {
	if reporter == nil {
		reporter = diagnostics.LogReporter{}
	}
	return composer.New(idx, cfg.RunContext(wizardVersion),
		composer.WithValidator(composer.NewValidator(cfg.ValidationMode, reporter)))
}

// ComposeOpts holds the inputs for Compose.
type ComposeOpts struct {
	// SelectionPath is the selection file to compose.
	SelectionPath string
	// IncludeLayout adds the project layout even when the selection file
	// does not ask for it.
	IncludeLayout bool
	// Config is the resolved configuration.
	Config *config.Resolved
	// WizardVersion is recorded in the project parameters.
	WizardVersion string
}

// ComposeResult is the outcome of Compose.
type ComposeResult struct {
	Catalog   *catalog.Index
	Selection *core.UserSelection
	Queue     *core.Queue
	Plan      *output.Plan

	// Issues are the validation issues reported in best-effort mode.
	Issues []diagnostics.Issue
	// Dropped counts issues lost to a full reporter buffer.
	Dropped uint64
}

// Compose executes the preamble shared by plan-producing commands: it
// loads the catalog and the selection, optionally prepends the project
// layout, and composes the generation queue.
//
// On failure it returns an *ExitError with the appropriate exit code.
func Compose(ctx context.Context, opts ComposeOpts) (*ComposeResult, error) {
	if opts.Config == nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}

	idx, err := LoadCatalog(ctx, opts.Config.Catalog)
	if err != nil {
		return nil, err
	}

	sf, err := catalog.LoadSelection(opts.SelectionPath)
	if err != nil {
		return nil, ExitFor(err)
	}
	sel, err := sf.Bind(idx)
	if err != nil {
		return nil, ExitFor(err)
	}

	recorder := &diagnostics.Recorder{}
	reporter := diagnostics.NewAsyncReporter(diagnostics.Tee(diagnostics.LogReporter{}, recorder), 0)
	defer reporter.Close()

	comp := NewComposer(idx, opts.Config, opts.WizardVersion, reporter)

	if sf.IncludeLayout || opts.IncludeLayout {
		entries, err := comp.ResolveLayout(sel.ProjectType, sel.Framework)
		if err != nil {
			return nil, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
		}
		composer.MergeLayout(sel, entries)
		output.Debug("layout added to selection", "entries", len(entries), "pages", len(sel.Pages), "features", len(sel.Features))
	}

	queue, err := comp.Compose(sel)
	if err != nil {
		return nil, ExitFor(err)
	}

	// Close before reading the recorder so every issue has been delivered.
	reporter.Close()

	return &ComposeResult{
		Catalog:   idx,
		Selection: sel,
		Queue:     queue,
		Plan:      output.NewPlan(queue, idx.Version(), sel),
		Issues:    recorder.Issues(),
		Dropped:   reporter.Dropped(),
	}, nil
}

// ExitFor maps err to an *ExitError by its sentinel. Errors that already
// carry an exit code are returned unchanged.
func ExitFor(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &oerrors.ExitError{Code: ExitCode(err), Err: err}
}

// ExitCode determines the exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return oerrors.ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var (
		verr      *core.ValidationError
		schemaErr *catalog.SchemaError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &schemaErr), errors.Is(err, oerrors.ErrValidation):
		return oerrors.ExitValidationError
	case errors.Is(err, oerrors.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return oerrors.ExitNotFound
	case errors.Is(err, oerrors.ErrInvalidInput):
		return oerrors.ExitInvalidInput
	default:
		return oerrors.ExitGeneralError
	}
}
