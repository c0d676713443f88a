// Package catalog provides the queryable template catalog the composer reads
// from, and loads catalogs from CUE or YAML files.
package catalog

import (
	"fmt"

	"github.com/studiokit/composer/internal/core"
)

// Predicate selects templates.
type Predicate func(t *core.TemplateInfo) bool

// Catalog is the read-only query surface over a set of templates.
// Implementations must return templates in a stable scan order.
type Catalog interface {
	// FindOne returns the first template matching pred, or nil.
	FindOne(pred Predicate) *core.TemplateInfo

	// FindAll returns every template matching pred in scan order.
	FindAll(pred Predicate) []*core.TemplateInfo

	// All returns every template in scan order.
	All() []*core.TemplateInfo

	// Version is the version string of the template set.
	Version() string
}

// Index is an immutable in-memory Catalog. Safe for concurrent reads.
type Index struct {
	version    string
	templates  []*core.TemplateInfo
	byIdentity map[string]*core.TemplateInfo
}

// NewIndex builds an index over templates, preserving their order as the
// scan order. Template identities must be unique.
func NewIndex(version string, templates []*core.TemplateInfo) (*Index, error) {
	idx := &Index{
		version:    version,
		templates:  make([]*core.TemplateInfo, 0, len(templates)),
		byIdentity: make(map[string]*core.TemplateInfo, len(templates)),
	}
	for _, t := range templates {
		if t == nil {
			continue
		}
		if t.Identity == "" {
			return nil, fmt.Errorf("template %q has no identity", t.Name)
		}
		if _, dup := idx.byIdentity[t.Identity]; dup {
			return nil, fmt.Errorf("duplicate template identity %q", t.Identity)
		}
		idx.byIdentity[t.Identity] = t
		idx.templates = append(idx.templates, t)
	}
	return idx, nil
}

// MustIndex is like NewIndex but panics on error. Intended for tests.
func MustIndex(version string, templates ...*core.TemplateInfo) *Index {
	idx, err := NewIndex(version, templates)
	if err != nil {
		panic(err)
	}
	return idx
}

// FindOne implements Catalog.
func (i *Index) FindOne(pred Predicate) *core.TemplateInfo {
	for _, t := range i.templates {
		if pred(t) {
			return t
		}
	}
	return nil
}

// FindAll implements Catalog.
func (i *Index) FindAll(pred Predicate) []*core.TemplateInfo {
	out := make([]*core.TemplateInfo, 0)
	for _, t := range i.templates {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

// All implements Catalog.
func (i *Index) All() []*core.TemplateInfo {
	out := make([]*core.TemplateInfo, len(i.templates))
	copy(out, i.templates)
	return out
}

// Version implements Catalog.
func (i *Index) Version() string {
	return i.version
}

// Get returns the template with the given identity.
func (i *Index) Get(identity string) (*core.TemplateInfo, bool) {
	t, ok := i.byIdentity[identity]
	return t, ok
}

// Len returns the number of templates.
func (i *Index) Len() int {
	return len(i.templates)
}

// ByIdentity matches a template identity.
func ByIdentity(identity string) Predicate {
	return func(t *core.TemplateInfo) bool { return t.Identity == identity }
}

// ByGroup matches a template group identity.
func ByGroup(group string) Predicate {
	return func(t *core.TemplateInfo) bool { return t.GroupIdentity == group }
}

// ByKind matches a template kind.
func ByKind(kind core.TemplateKind) Predicate {
	return func(t *core.TemplateInfo) bool { return t.Kind == kind }
}

// ByFramework matches templates supporting fw.
func ByFramework(fw string) Predicate {
	return func(t *core.TemplateInfo) bool { return t.SupportsFramework(fw) }
}

// ByProjectType matches templates applicable to pt.
func ByProjectType(pt string) Predicate {
	return func(t *core.TemplateInfo) bool { return t.SupportsProjectType(pt) }
}

// DeclaresProjectType matches templates that list pt explicitly.
func DeclaresProjectType(pt string) Predicate {
	return func(t *core.TemplateInfo) bool { return t.DeclaresProjectType(pt) }
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(t *core.TemplateInfo) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// ProjectTemplate returns the Project template that declares projectType
// and supports framework, or nil.
func ProjectTemplate(c Catalog, projectType, framework string) *core.TemplateInfo {
	return c.FindOne(And(ByKind(core.KindProject), DeclaresProjectType(projectType), ByFramework(framework)))
}

// ProjectTypes returns the distinct project types declared by Project
// templates, in scan order.
func ProjectTypes(c Catalog) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range c.FindAll(ByKind(core.KindProject)) {
		if t.ProjectType == "" || seen[t.ProjectType] {
			continue
		}
		seen[t.ProjectType] = true
		out = append(out, t.ProjectType)
	}
	return out
}
