package core

import "sort"

// Well-known generation parameter names.
const (
	ParamRootNamespace    = "wts.rootNamespace"
	ParamItemNamespace    = "wts.itemNamespace"
	ParamUserName         = "wts.userName"
	ParamWizardVersion    = "wts.wizardVersion"
	ParamTemplatesVersion = "wts.templatesVersion"
)

// Parameter sources recorded alongside each parameter value.
const (
	SourceDefault = "default"
	SourceRun     = "run"

	// SourceCompositionPrefix prefixes the identity of the composition
	// template that exported a parameter.
	SourceCompositionPrefix = "composition:"
)

// GenInfo is one unit of generation work.
type GenInfo struct {
	// Name is the display name the item is generated under.
	Name string

	// Template is the template bound to this item.
	Template *TemplateInfo

	// Parameters maps parameter names to values.
	Parameters map[string]string

	// sources records which stage last wrote each parameter.
	sources map[string]string
}

// NewGenInfo creates a GenInfo with an empty parameter map.
func NewGenInfo(name string, t *TemplateInfo) *GenInfo {
	return &GenInfo{
		Name:       name,
		Template:   t,
		Parameters: make(map[string]string),
		sources:    make(map[string]string),
	}
}

// SetParameter writes a parameter value and records its source. When the key
// was previously written by a different source the previous source is
// returned with overwritten set to true; the new value always wins.
func (g *GenInfo) SetParameter(name, value, source string) (previous string, overwritten bool) {
	if g.Parameters == nil {
		g.Parameters = make(map[string]string)
	}
	if g.sources == nil {
		g.sources = make(map[string]string)
	}
	prev, exists := g.sources[name]
	g.Parameters[name] = value
	g.sources[name] = source
	if exists && prev != source {
		return prev, true
	}
	return "", false
}

// ParameterSource returns the stage that last wrote a parameter.
func (g *GenInfo) ParameterSource(name string) string {
	return g.sources[name]
}

// ParameterNames returns the parameter names sorted for stable output.
func (g *GenInfo) ParameterNames() []string {
	names := make([]string, 0, len(g.Parameters))
	for k := range g.Parameters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// TemplateIdentity returns the bound template identity, or "" if unbound.
func (g *GenInfo) TemplateIdentity() string {
	if g.Template == nil {
		return ""
	}
	return g.Template.Identity
}

// Queue is the ordered generation plan. Insertion order determines rendering
// precedence downstream; the queue is append-only.
type Queue struct {
	items []*GenInfo
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{items: make([]*GenInfo, 0)}
}

// Append adds items to the end of the queue.
func (q *Queue) Append(items ...*GenInfo) {
	q.items = append(q.items, items...)
}

// Items returns the queued items in order. The returned slice is a copy;
// the GenInfo values are shared.
func (q *Queue) Items() []*GenInfo {
	out := make([]*GenInfo, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// At returns the item at index i.
func (q *Queue) At(i int) *GenInfo {
	return q.items[i]
}

// HasProject reports whether the queue contains a Project item.
func (q *Queue) HasProject() bool {
	for _, item := range q.items {
		if item.Template != nil && item.Template.Kind == KindProject {
			return true
		}
	}
	return false
}
