package composer

import (
	"iter"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/output"
)

// LayoutEntry is a layout item bound to the template that implements it.
type LayoutEntry struct {
	Item     core.LayoutItem
	Template *core.TemplateInfo
}

// GetLayoutTemplates returns a lazy sequence of the layout entries declared
// by the Project template for (projectType, framework), each paired with the
// Page or Feature template of its group that supports framework. Invalid
// entries are handled by the validation policy. In strict mode the first
// invalid entry ends the sequence: it is yielded without a template,
// together with its *core.ValidationError.
//
// The sequence is restartable: each range re-reads the catalog.
func (c *Composer) GetLayoutTemplates(projectType, framework string) iter.Seq2[LayoutEntry, error] {
	return func(yield func(LayoutEntry, error) bool) {
		project := catalog.ProjectTemplate(c.catalog, projectType, framework)
		if project == nil {
			return
		}

		for _, item := range project.Layout {
			t := c.catalog.FindOne(catalog.And(catalog.ByGroup(item.TemplateGroupIdentity), catalog.ByFramework(framework)))

			var kind core.IssueKind
			switch {
			case t == nil:
				kind = core.MissingLayoutTemplate
			case !t.Kind.IsItem():
				kind = core.InvalidLayoutKind
			default:
				if !yield(LayoutEntry{Item: item, Template: t}, nil) {
					return
				}
				continue
			}

			err := c.validator.Check(&core.ValidationError{
				Kind:      kind,
				Template:  project.Identity,
				Reference: item.TemplateGroupIdentity,
				Framework: framework,
			})
			if err != nil {
				yield(LayoutEntry{Item: item}, err)
				return
			}
		}
	}
}

// ResolveLayout collects the layout sequence eagerly and returns the first
// strict-mode validation error.
func (c *Composer) ResolveLayout(projectType, framework string) ([]LayoutEntry, error) {
	var entries []LayoutEntry
	for e, err := range c.GetLayoutTemplates(projectType, framework) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LayoutSelection returns the layout entries as selected items, pages first
// then features, each under its layout name.
func LayoutSelection(entries []LayoutEntry) (pages, features []core.SelectedItem) {
	for _, e := range entries {
		item := core.SelectedItem{Name: e.Item.Name, Template: e.Template}
		if e.Template.Kind == core.KindPage {
			pages = append(pages, item)
		} else {
			features = append(features, item)
		}
	}
	return pages, features
}

// MergeLayout prepends the layout entries to the selected pages and
// features. A single-instance template already selected, or already placed
// by an earlier layout entry, is not added again; the selected item keeps
// its name.
func MergeLayout(sel *core.UserSelection, entries []LayoutEntry) {
	selected := sets.New[string]()
	for _, item := range append(slices.Clone(sel.Pages), sel.Features...) {
		if item.Template != nil && !item.Template.MultipleInstance {
			selected.Insert(item.Template.Identity)
		}
	}

	kept := make([]LayoutEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Template.MultipleInstance {
			if selected.Has(e.Template.Identity) {
				output.Debug("layout entry already selected", "name", e.Item.Name, "template", e.Template.Identity)
				continue
			}
			selected.Insert(e.Template.Identity)
		}
		kept = append(kept, e)
	}

	pages, features := LayoutSelection(kept)
	sel.Pages = append(pages, sel.Pages...)
	sel.Features = append(features, sel.Features...)
}
