package composer

import (
	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/output"
	"github.com/studiokit/composer/internal/query"
)

// compiledComposition is a Composition template with its parsed filter.
type compiledComposition struct {
	template *core.TemplateInfo
	query    *query.Query
}

// ApplyCompositions matches every composition template against the items
// already in queue and appends one item per match. The matched item
// receives the composition's exports as parameters; the appended item is
// bound to the composition template under the matched item's name.
//
// Matching runs over a snapshot of the queue, so injected items never
// trigger further compositions in the same call.
func (c *Composer) ApplyCompositions(queue *core.Queue, sel *core.UserSelection) error {
	compositions, err := c.loadCompositions()
	if err != nil {
		return err
	}
	if len(compositions) == 0 || sel == nil {
		return nil
	}

	rc := c.runFor(sel)
	ctx := query.NewContext(sel.ProjectType, sel.Framework)
	snapshot := queue.Items()

	for _, gen := range snapshot {
		for _, comp := range compositions {
			if !comp.template.SupportsFramework(sel.Framework) {
				continue
			}
			if !comp.query.Match(gen.Template, ctx) {
				continue
			}

			output.Debug("composition matched",
				"composition", comp.template.Identity,
				"item", gen.Name,
				"template", gen.TemplateIdentity())

			source := core.SourceCompositionPrefix + comp.template.Identity
			for _, export := range comp.template.Exports {
				if prev, overwritten := gen.SetParameter(export.Name, export.Value, source); overwritten {
					output.Debug("parameter overwritten",
						"item", gen.Name, "parameter", export.Name,
						"previousSource", prev, "source", source)
				}
			}

			queue.Append(newGenInfo(gen.Name, comp.template, rc))
		}
	}
	return nil
}

// loadCompositions compiles the catalog's composition filters once per
// Composer. Filters that fail to compile go through the validation policy
// on every call.
func (c *Composer) loadCompositions() ([]compiledComposition, error) {
	c.compileOnce.Do(func() {
		for _, t := range c.catalog.FindAll(catalog.ByKind(core.KindComposition)) {
			q, err := query.Compile(t.CompositionFilter)
			if err != nil {
				c.compileErrs = append(c.compileErrs, &core.ValidationError{
					Kind:     core.InvalidCompositionFilter,
					Template: t.Identity,
					Cause:    err,
				})
				continue
			}
			c.compositions = append(c.compositions, compiledComposition{template: t, query: q})
		}
		output.Debug("composition filters compiled", "valid", len(c.compositions), "invalid", len(c.compileErrs))
	})

	for _, issue := range c.compileErrs {
		if err := c.validator.Check(issue); err != nil {
			return nil, err
		}
	}
	return c.compositions, nil
}
