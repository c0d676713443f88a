// Package core defines the shared domain types of the composer: templates,
// user selections, generation items and the validation vocabulary.
// It depends only on the standard library.
package core

import (
	"slices"
	"strings"
)

// TemplateKind classifies a catalog template.
type TemplateKind string

const (
	// KindProject is the root template of a generated project.
	KindProject TemplateKind = "Project"

	// KindPage is a user-selectable page template.
	KindPage TemplateKind = "Page"

	// KindFeature is a user-selectable feature template.
	KindFeature TemplateKind = "Feature"

	// KindComposition is a rule-carrying template injected by filter match.
	KindComposition TemplateKind = "Composition"
)

// ValidKinds returns all template kinds in declaration order.
func ValidKinds() []TemplateKind {
	return []TemplateKind{KindProject, KindPage, KindFeature, KindComposition}
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (TemplateKind, bool) {
	for _, k := range ValidKinds() {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return "", false
}

// IsItem reports whether templates of this kind may be the target of a
// dependency or a layout entry.
func (k TemplateKind) IsItem() bool {
	return k == KindPage || k == KindFeature
}

// String returns the kind name.
func (k TemplateKind) String() string {
	return string(k)
}

// AllProjectTypes is the project type value that matches every project type.
const AllProjectTypes = "all"

// License is a license entry attached to a template.
type License struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// Export is a name/value pair a composition template contributes to the
// parameters of the item it matched.
type Export struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LayoutItem references, by group identity, a template that a Project
// template declares as part of its default layout.
type LayoutItem struct {
	// Name is the display name the layout entry is generated under.
	Name string `json:"name"`

	// TemplateGroupIdentity selects the template family for the entry.
	TemplateGroupIdentity string `json:"templateGroupIdentity"`

	// Readonly marks entries the user cannot remove from the selection.
	Readonly bool `json:"readonly,omitempty"`
}

// TemplateInfo describes a catalog template. Catalog-owned and read-only
// to the composer.
type TemplateInfo struct {
	Identity          string       `json:"identity"`
	GroupIdentity     string       `json:"groupIdentity,omitempty"`
	Name              string       `json:"name,omitempty"`
	DefaultName       string       `json:"defaultName,omitempty"`
	ProjectType       string       `json:"projectType,omitempty"`
	Kind              TemplateKind `json:"kind"`
	Frameworks        []string     `json:"frameworks"`
	Dependencies      []string     `json:"dependencies,omitempty"`
	MultipleInstance  bool         `json:"multipleInstance,omitempty"`
	Layout            []LayoutItem `json:"layout,omitempty"`
	CompositionFilter string       `json:"compositionFilter,omitempty"`
	Licenses          []License    `json:"licenses,omitempty"`
	Exports           []Export     `json:"exports,omitempty"`
}

// SupportsFramework reports whether fw is in the template's framework list.
func (t *TemplateInfo) SupportsFramework(fw string) bool {
	return slices.Contains(t.Frameworks, fw)
}

// SupportsProjectType reports whether the template applies to pt. Templates
// without a project type, or tagged "all", apply to every project type.
func (t *TemplateInfo) SupportsProjectType(pt string) bool {
	if t.ProjectType == "" || t.ProjectType == AllProjectTypes {
		return true
	}
	for _, p := range strings.Split(t.ProjectType, "|") {
		if strings.TrimSpace(p) == pt {
			return true
		}
	}
	return false
}

// DeclaresProjectType reports whether pt is listed explicitly in the
// template's project types. Untyped and "all" templates never declare one.
func (t *TemplateInfo) DeclaresProjectType(pt string) bool {
	if pt == "" {
		return false
	}
	for _, p := range strings.Split(t.ProjectType, "|") {
		if strings.TrimSpace(p) == pt {
			return true
		}
	}
	return false
}

// DisplayName returns the template's name, falling back to its identity.
func (t *TemplateInfo) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Identity
}
