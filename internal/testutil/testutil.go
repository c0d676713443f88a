// Package testutil provides test helpers for composer tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/studiokit/composer/internal/core"
)

// TempDir creates a temporary directory for tests and returns a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "composer-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("warning: failed to remove temp dir %s: %v", dir, err)
		}
	}
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// TemplateOption customizes a fixture template.
type TemplateOption func(*core.TemplateInfo)

// DependsOn sets the template's dependency identities.
func DependsOn(ids ...string) TemplateOption {
	return func(t *core.TemplateInfo) { t.Dependencies = ids }
}

// Group sets the template's group identity.
func Group(group string) TemplateOption {
	return func(t *core.TemplateInfo) { t.GroupIdentity = group }
}

// Frameworks replaces the template's framework list.
func Frameworks(fws ...string) TemplateOption {
	return func(t *core.TemplateInfo) { t.Frameworks = fws }
}

// ProjectType sets the template's project type.
func ProjectType(pt string) TemplateOption {
	return func(t *core.TemplateInfo) { t.ProjectType = pt }
}

// MultipleInstance marks the template as allowing multiple instances.
func MultipleInstance() TemplateOption {
	return func(t *core.TemplateInfo) { t.MultipleInstance = true }
}

// Layout sets the layout entries of a Project template.
func Layout(items ...core.LayoutItem) TemplateOption {
	return func(t *core.TemplateInfo) { t.Layout = items }
}

// Exports sets the template's exports.
func Exports(exports ...core.Export) TemplateOption {
	return func(t *core.TemplateInfo) { t.Exports = exports }
}

// Template builds a fixture template supporting the MVVMBasic framework.
// The group identity defaults to the identity.
func Template(identity string, kind core.TemplateKind, opts ...TemplateOption) *core.TemplateInfo {
	t := &core.TemplateInfo{
		Identity:      identity,
		GroupIdentity: identity,
		Name:          identity,
		Kind:          kind,
		Frameworks:    []string{"MVVMBasic"},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Composition builds a fixture Composition template with the given filter.
func Composition(identity, filter string, opts ...TemplateOption) *core.TemplateInfo {
	t := Template(identity, core.KindComposition, opts...)
	t.CompositionFilter = filter
	return t
}

// CatalogYAML is a small catalog covering every template kind.
const CatalogYAML = `version: "1.0.0"
templates:
  - identity: wts.Proj.SplitView
    name: Navigation Pane
    kind: Project
    projectType: SplitView
    frameworks: [MVVMBasic]
    layout:
      - name: Main
        templateGroupIdentity: wts.Page.Blank
  - identity: wts.Page.Blank
    groupIdentity: wts.Page.Blank
    name: Blank
    kind: Page
    frameworks: [MVVMBasic]
  - identity: wts.Page.Grid
    groupIdentity: wts.Page.Grid
    name: Grid
    kind: Page
    frameworks: [MVVMBasic]
    multipleInstance: true
    dependencies: [wts.Feat.SampleData]
  - identity: wts.Feat.SampleData
    groupIdentity: wts.Feat.SampleData
    name: Sample Data
    kind: Feature
    frameworks: [MVVMBasic]
  - identity: wts.Comp.Grid
    kind: Composition
    frameworks: [MVVMBasic]
    compositionFilter: "identity == wts.Page.Grid"
    exports:
      - name: sampleSource
        value: GridData
`

// SelectionYAML selects one grid page from CatalogYAML.
const SelectionYAML = `projectType: SplitView
framework: MVVMBasic
pages:
  - name: Orders
    template: wts.Page.Grid
`

// Fixture writes CatalogYAML and SelectionYAML to a temporary directory and
// returns the catalog and selection paths.
func Fixture(t *testing.T) (catalogPath, selectionPath string) {
	t.Helper()
	dir := t.TempDir()
	catalogPath = WriteFile(t, dir, "catalog/templates.yaml", CatalogYAML)
	selectionPath = WriteFile(t, dir, "selection.yaml", SelectionYAML)
	return filepath.Dir(catalogPath), selectionPath
}
