// Package composer expands a user selection into an ordered generation
// queue. It resolves the project template, queues the selected pages and
// features, and applies composition templates whose filters match the
// queued items. Dependency and layout resolution are exposed for callers
// that need them ahead of composition.
package composer

import (
	"fmt"
	"sync"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/diagnostics"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
)

// Composer builds generation queues from a catalog. A Composer is safe for
// concurrent use as long as the catalog is not mutated; each Compose call
// builds its own queue.
type Composer struct {
	catalog   catalog.Catalog
	run       core.RunContext
	validator *Validator

	compileOnce  sync.Once
	compositions []compiledComposition
	compileErrs  []*core.ValidationError
}

// Option configures a Composer.
type Option func(*Composer)

// WithValidator sets the validation policy.
func WithValidator(v *Validator) Option {
	return func(c *Composer) {
		c.validator = v
	}
}

// New creates a Composer over c. Without WithValidator, validation issues
// are logged and the offending items skipped.
func New(c catalog.Catalog, rc core.RunContext, opts ...Option) *Composer {
	comp := &Composer{
		catalog: c,
		run:     rc,
	}
	for _, opt := range opts {
		opt(comp)
	}
	if comp.validator == nil {
		comp.validator = NewValidator(core.ModeBestEffort, diagnostics.LogReporter{})
	}
	return comp
}

// Compose builds the generation queue for sel: the project item, then the
// selected pages and features in selection order, then the items injected
// by composition templates. An empty project type yields an empty queue.
func (c *Composer) Compose(sel *core.UserSelection) (*core.Queue, error) {
	queue := core.NewQueue()
	if sel.IsEmpty() {
		output.Debug("no project type selected, nothing to compose")
		return queue, nil
	}

	rc := c.runFor(sel)
	if err := c.addProject(queue, sel, rc); err != nil {
		return nil, err
	}
	if err := c.addItems(queue, sel.Pages, sel.Framework, rc); err != nil {
		return nil, err
	}
	if err := c.addItems(queue, sel.Features, sel.Framework, rc); err != nil {
		return nil, err
	}
	if err := c.ApplyCompositions(queue, sel); err != nil {
		return nil, err
	}

	output.Debug("composition complete", "items", queue.Len(), "projectType", sel.ProjectType, "framework", sel.Framework)
	return queue, nil
}

// runFor returns the run context for sel. Without a configured project
// name, the project template's display name names the project and seeds
// the namespaces.
func (c *Composer) runFor(sel *core.UserSelection) core.RunContext {
	rc := c.run
	if rc.ProjectName != "" || sel == nil {
		return rc
	}
	if t := catalog.ProjectTemplate(c.catalog, sel.ProjectType, sel.Framework); t != nil {
		rc.ProjectName = t.DisplayName()
	}
	return rc
}

func (c *Composer) addProject(queue *core.Queue, sel *core.UserSelection, rc core.RunContext) error {
	t := catalog.ProjectTemplate(c.catalog, sel.ProjectType, sel.Framework)
	if t == nil {
		return c.validator.Check(&core.ValidationError{
			Kind:      core.MissingProjectTemplate,
			Reference: sel.ProjectType,
			Framework: sel.Framework,
		})
	}

	gen := newGenInfo(rc.ProjectName, t, rc)
	gen.SetParameter(core.ParamUserName, rc.UserName, core.SourceRun)
	gen.SetParameter(core.ParamWizardVersion, rc.WizardVersion, core.SourceRun)
	gen.SetParameter(core.ParamTemplatesVersion, c.catalog.Version(), core.SourceRun)
	queue.Append(gen)
	return nil
}

func (c *Composer) addItems(queue *core.Queue, items []core.SelectedItem, framework string, rc core.RunContext) error {
	for _, item := range items {
		if item.Template == nil {
			return oerrors.Wrap(oerrors.ErrInvalidInput, fmt.Sprintf("selected item %q has no template", item.Name))
		}
		if !item.Template.SupportsFramework(framework) {
			err := c.validator.Check(&core.ValidationError{
				Kind:      core.UnsupportedFramework,
				Template:  item.Template.Identity,
				Framework: framework,
			})
			if err != nil {
				return err
			}
			continue
		}
		queue.Append(newGenInfo(item.Name, item.Template, rc))
	}
	return nil
}

func newGenInfo(name string, t *core.TemplateInfo, rc core.RunContext) *core.GenInfo {
	gen := core.NewGenInfo(name, t)
	SeedDefaults(gen, rc)
	return gen
}
