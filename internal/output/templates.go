package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/studiokit/composer/internal/core"
)

// TemplateSummary is the listed form of a catalog template.
type TemplateSummary struct {
	Identity      string   `json:"identity"`
	Kind          string   `json:"kind"`
	Name          string   `json:"name,omitempty"`
	GroupIdentity string   `json:"groupIdentity,omitempty"`
	ProjectType   string   `json:"projectType,omitempty"`
	Frameworks    []string `json:"frameworks"`
	Dependencies  []string `json:"dependencies,omitempty"`
}

// SummarizeTemplates converts templates to their listed form, keeping order.
func SummarizeTemplates(ts []*core.TemplateInfo) []TemplateSummary {
	out := make([]TemplateSummary, 0, len(ts))
	for _, t := range ts {
		out = append(out, TemplateSummary{
			Identity:      t.Identity,
			Kind:          t.Kind.String(),
			Name:          t.Name,
			GroupIdentity: t.GroupIdentity,
			ProjectType:   t.ProjectType,
			Frameworks:    t.Frameworks,
			Dependencies:  t.Dependencies,
		})
	}
	return out
}

// WriteTemplates writes a template list in the requested format.
func WriteTemplates(w io.Writer, ts []*core.TemplateInfo, format OutputFormat) error {
	summaries := SummarizeTemplates(ts)
	return writeStructured(w, "templates", summaries, format, func() string {
		t := NewTable("IDENTITY", "KIND", "NAME", "FRAMEWORKS").Empty("No templates found.")
		for _, s := range summaries {
			t.Row(
				s.Identity,
				KindStyle(core.TemplateKind(s.Kind)).Render(s.Kind),
				s.Name,
				strings.Join(s.Frameworks, ", "),
			)
		}
		return t.String()
	})
}

// LayoutRow is one resolved layout entry.
type LayoutRow struct {
	Name     string `json:"name"`
	Template string `json:"template"`
	Kind     string `json:"kind"`
	Readonly bool   `json:"readonly,omitempty"`
}

// WriteLayout writes resolved layout entries in the requested format.
func WriteLayout(w io.Writer, rows []LayoutRow, format OutputFormat) error {
	return writeStructured(w, "layout", rows, format, func() string {
		t := NewTable("NAME", "KIND", "TEMPLATE", "READONLY").Empty("No layout entries.")
		for _, r := range rows {
			t.Row(
				StyleNoun.Render(r.Name),
				KindStyle(core.TemplateKind(r.Kind)).Render(r.Kind),
				r.Template,
				strconv.FormatBool(r.Readonly),
			)
		}
		return t.String()
	})
}
