package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/studiokit/composer/internal/core"
	oerrors "github.com/studiokit/composer/internal/errors"
)

// SelectionFile is the on-disk form of a user selection. Templates are
// referenced by identity or by group identity.
type SelectionFile struct {
	ProjectType string `yaml:"projectType"`
	Framework   string `yaml:"framework"`

	// IncludeLayout adds the project's declared layout to the selection.
	IncludeLayout bool `yaml:"includeLayout,omitempty"`

	Pages    []SelectionEntry `yaml:"pages,omitempty"`
	Features []SelectionEntry `yaml:"features,omitempty"`
}

// SelectionEntry is one selected page or feature.
type SelectionEntry struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

// LoadSelection reads a selection file.
func LoadSelection(path string) (*SelectionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError(
				fmt.Sprintf("selection file %s does not exist", path), path,
				"pass an existing file with --selection")
		}
		return nil, fmt.Errorf("reading selection %s: %w", path, err)
	}
	return ParseSelection(data)
}

// ParseSelection decodes selection YAML.
func ParseSelection(data []byte) (*SelectionFile, error) {
	var sf SelectionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing selection: %w", err)
	}
	return &sf, nil
}

// Bind resolves the file's template references against a catalog. A
// reference matches a template identity first, then a group identity whose
// template supports the selected framework.
func (sf *SelectionFile) Bind(c Catalog) (*core.UserSelection, error) {
	sel := &core.UserSelection{
		ProjectType: sf.ProjectType,
		Framework:   sf.Framework,
	}
	var err error
	if sel.Pages, err = bindEntries(c, sf.Framework, sf.Pages, "page"); err != nil {
		return nil, err
	}
	if sel.Features, err = bindEntries(c, sf.Framework, sf.Features, "feature"); err != nil {
		return nil, err
	}
	return sel, nil
}

func bindEntries(c Catalog, framework string, entries []SelectionEntry, what string) ([]core.SelectedItem, error) {
	items := make([]core.SelectedItem, 0, len(entries))
	for _, e := range entries {
		t := c.FindOne(ByIdentity(e.Template))
		if t == nil {
			t = c.FindOne(And(ByGroup(e.Template), ByFramework(framework)))
		}
		if t == nil {
			return nil, oerrors.NewNotFoundError(
				fmt.Sprintf("%s template %q not found in catalog", what, e.Template), "",
				"run 'composer catalog list' to see available templates")
		}
		name := e.Name
		if name == "" {
			name = t.DefaultName
		}
		if name == "" {
			name = t.DisplayName()
		}
		items = append(items, core.SelectedItem{Name: name, Template: t})
	}
	return items, nil
}
