// Package scaffold renders starter selection files from embedded
// templates.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"text/template"

	"github.com/studiokit/composer/internal/composer"
	"github.com/studiokit/composer/internal/core"
)

//go:embed templates/*.yaml.tmpl
var templatesFS embed.FS

// DefaultTemplateName is the template used when --template is not specified.
const DefaultTemplateName = "layout"

// Template describes an embedded selection scaffold.
type Template struct {
	// Name is the template identifier.
	Name string

	// Description explains what the scaffold contains.
	Description string

	// Default indicates the template used when none is given.
	Default bool
}

var registry = map[string]Template{
	"minimal": {
		Name:        "minimal",
		Description: "Project only, no pages or features",
	},
	"layout": {
		Name:        "layout",
		Description: "Project with its default layout as editable entries",
		Default:     true,
	},
}

// List returns the available templates sorted by name.
func List() []Template {
	out := make([]Template, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns a template by name.
func Get(name string) (Template, error) {
	t, ok := registry[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: %v", name, names())
	}
	return t, nil
}

func names() []string {
	out := make([]string, 0, len(registry))
	for _, t := range List() {
		out = append(out, t.Name)
	}
	return out
}

// Entry is one page or feature of a scaffolded selection.
type Entry struct {
	Name     string
	Template string
	Readonly bool
}

// SelectionData is the data a selection scaffold is rendered with.
type SelectionData struct {
	ProjectType      string
	Framework        string
	ProjectTemplate  string
	TemplatesVersion string
	Pages            []Entry
	Features         []Entry
}

// NewSelectionData builds scaffold data for a project template and its
// resolved layout. Entries reference templates by identity.
func NewSelectionData(project *core.TemplateInfo, projectType, framework, templatesVersion string, layout []composer.LayoutEntry) SelectionData {
	data := SelectionData{
		ProjectType:      projectType,
		Framework:        framework,
		TemplatesVersion: templatesVersion,
	}
	if project != nil {
		data.ProjectTemplate = project.Identity
	}
	for _, e := range layout {
		entry := Entry{Name: e.Item.Name, Template: e.Template.Identity, Readonly: e.Item.Readonly}
		if e.Template.Kind == core.KindPage {
			data.Pages = append(data.Pages, entry)
		} else {
			data.Features = append(data.Features, entry)
		}
	}
	return data
}

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

// Render renders the named template with data.
func Render(name string, data SelectionData) ([]byte, error) {
	if _, err := Get(name); err != nil {
		return nil, err
	}

	path := "templates/" + name + ".yaml.tmpl"
	content, err := templatesFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
