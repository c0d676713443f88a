package output

import (
	"fmt"
	"io"
	"strconv"

	"sigs.k8s.io/yaml"

	"github.com/studiokit/composer/internal/core"
)

// Plan is the serialized form of a generation queue.
type Plan struct {
	TemplatesVersion string     `json:"templatesVersion,omitempty"`
	ProjectType      string     `json:"projectType,omitempty"`
	Framework        string     `json:"framework,omitempty"`
	Items            []PlanItem `json:"items"`
}

// PlanItem is one queued generation item.
type PlanItem struct {
	Name       string            `json:"name"`
	Template   string            `json:"template"`
	Kind       string            `json:"kind"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// Key identifies an item across plans.
func (i PlanItem) Key() string {
	return fmt.Sprintf("%s/%s@%s", i.Kind, i.Name, i.Template)
}

// NewPlan converts a queue into its serialized form, preserving order.
func NewPlan(q *core.Queue, templatesVersion string, sel *core.UserSelection) *Plan {
	p := &Plan{
		TemplatesVersion: templatesVersion,
		Items:            make([]PlanItem, 0, q.Len()),
	}
	if sel != nil {
		p.ProjectType = sel.ProjectType
		p.Framework = sel.Framework
	}
	for _, gi := range q.Items() {
		item := PlanItem{
			Name:     gi.Name,
			Template: gi.TemplateIdentity(),
		}
		if gi.Template != nil {
			item.Kind = gi.Template.Kind.String()
		}
		if len(gi.Parameters) > 0 {
			item.Parameters = make(map[string]string, len(gi.Parameters))
			for k, v := range gi.Parameters {
				item.Parameters[k] = v
			}
		}
		p.Items = append(p.Items, item)
	}
	return p
}

// ReadPlan decodes a plan written as YAML or JSON.
func ReadPlan(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	return &p, nil
}

// WritePlan writes a plan in the requested format.
func WritePlan(w io.Writer, p *Plan, format OutputFormat) error {
	return writeStructured(w, "plan", p, format, func() string { return RenderPlanTable(p) })
}

// RenderPlanTable renders a plan as a table in queue order.
func RenderPlanTable(p *Plan) string {
	t := NewTable("#", "KIND", "NAME", "TEMPLATE", "PARAMS").Numeric(0, 4).Empty("Plan is empty.")
	for i, item := range p.Items {
		kind := core.TemplateKind(item.Kind)
		t.Row(
			strconv.Itoa(i+1),
			KindStyle(kind).Render(item.Kind),
			StyleNoun.Render(item.Name),
			item.Template,
			strconv.Itoa(len(item.Parameters)),
		)
	}
	return t.String()
}
