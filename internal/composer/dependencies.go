package composer

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/output"
)

// dependencyFrame is one template on the active walk path and the index of
// its next unvisited dependency.
type dependencyFrame struct {
	template *core.TemplateInfo
	next     int
}

// GetAllDependencies returns the transitive dependencies of t for framework
// in depth-first pre-order of first discovery. Each template appears once
// and t itself is never part of its own closure.
//
// A dependency that is missing, is not a Page or Feature, or allows
// multiple instances is a validation issue: strict mode returns it, best
// effort skips the dependency and keeps walking. A dependency that leads
// back onto the active path is a cycle and is logged, not followed.
func (c *Composer) GetAllDependencies(t *core.TemplateInfo, framework string) ([]*core.TemplateInfo, error) {
	if t == nil {
		return nil, nil
	}

	result := make([]*core.TemplateInfo, 0, len(t.Dependencies))
	resolved := sets.New(t.Identity)
	onPath := sets.New(t.Identity)
	stack := []*dependencyFrame{{template: t}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.template.Dependencies) {
			onPath.Delete(top.template.Identity)
			stack = stack[:len(stack)-1]
			continue
		}
		id := top.template.Dependencies[top.next]
		top.next++

		if onPath.Has(id) {
			output.Warn("dependency cycle detected", "template", top.template.Identity, "dependency", id)
			continue
		}
		if resolved.Has(id) {
			continue
		}

		dep, err := c.resolveDependency(top.template, id, framework)
		if err != nil {
			return nil, err
		}
		if dep == nil {
			continue
		}

		output.Debug("dependency resolved", "template", top.template.Identity, "dependency", id)
		resolved.Insert(id)
		onPath.Insert(id)
		result = append(result, dep)
		stack = append(stack, &dependencyFrame{template: dep})
	}

	return result, nil
}

// resolveDependency looks up and validates one declared dependency. A nil
// template with a nil error means the dependency was skipped.
func (c *Composer) resolveDependency(owner *core.TemplateInfo, id, framework string) (*core.TemplateInfo, error) {
	issue := &core.ValidationError{
		Template:  owner.Identity,
		Reference: id,
		Framework: framework,
	}

	dep := c.catalog.FindOne(catalog.And(catalog.ByIdentity(id), catalog.ByFramework(framework)))
	switch {
	case dep == nil:
		issue.Kind = core.MissingDependencyTemplate
	case !dep.Kind.IsItem():
		issue.Kind = core.InvalidDependencyKind
	case dep.MultipleInstance:
		issue.Kind = core.DependencyMustBeSingleInstance
	default:
		return dep, nil
	}
	return nil, c.validator.Check(issue)
}
