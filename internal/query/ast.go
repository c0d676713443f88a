package query

import (
	"strconv"
	"strings"

	"github.com/studiokit/composer/internal/core"
)

// Context holds ambient values addressable as $key in a filter.
type Context map[string]string

// Context keys populated by the composer.
const (
	ContextProjectType = "projectType"
	ContextFramework   = "framework"
)

// node is a compiled boolean expression.
type node interface {
	eval(t *core.TemplateInfo, ctx Context) bool
	String() string
}

type orNode struct{ terms []node }

func (n *orNode) eval(t *core.TemplateInfo, ctx Context) bool {
	for _, term := range n.terms {
		if term.eval(t, ctx) {
			return true
		}
	}
	return false
}

func (n *orNode) String() string {
	parts := make([]string, len(n.terms))
	for i, term := range n.terms {
		parts[i] = term.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

type andNode struct{ terms []node }

func (n *andNode) eval(t *core.TemplateInfo, ctx Context) bool {
	for _, term := range n.terms {
		if !term.eval(t, ctx) {
			return false
		}
	}
	return true
}

func (n *andNode) String() string {
	parts := make([]string, len(n.terms))
	for i, term := range n.terms {
		parts[i] = term.String()
	}
	return "(" + strings.Join(parts, " & ") + ")"
}

type notNode struct{ inner node }

func (n *notNode) eval(t *core.TemplateInfo, ctx Context) bool {
	return !n.inner.eval(t, ctx)
}

func (n *notNode) String() string {
	return "!" + n.inner.String()
}

// operand produces the candidate values of one side of a comparison.
type operand interface {
	values(t *core.TemplateInfo, ctx Context) []string
	String() string
}

type literal struct{ val string }

func (l literal) values(*core.TemplateInfo, Context) []string {
	return []string{l.val}
}

func (l literal) String() string {
	return strconv.Quote(l.val)
}

type contextRef struct{ key string }

func (c contextRef) values(_ *core.TemplateInfo, ctx Context) []string {
	return []string{ctx[c.key]}
}

func (c contextRef) String() string {
	return "$" + c.key
}

type listOperand struct{ items []operand }

func (l listOperand) values(t *core.TemplateInfo, ctx Context) []string {
	var out []string
	for _, item := range l.items {
		out = append(out, item.values(t, ctx)...)
	}
	return out
}

func (l listOperand) String() string {
	parts := make([]string, len(l.items))
	for i, item := range l.items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// attribute is a template attribute addressable by name on the left side of
// a comparison.
type attribute struct {
	name string
	// match reports whether the attribute of t equals any of want.
	match func(t *core.TemplateInfo, want []string) bool
}

func (a attribute) String() string { return a.name }

func equalsAny(have string, want []string, fold bool) bool {
	for _, w := range want {
		if have == w || (fold && strings.EqualFold(have, w)) {
			return true
		}
	}
	return false
}

// attributes lists every template attribute a filter may reference.
var attributes = map[string]attribute{
	"identity": {name: "identity", match: func(t *core.TemplateInfo, want []string) bool {
		return equalsAny(t.Identity, want, false)
	}},
	"groupIdentity": {name: "groupIdentity", match: func(t *core.TemplateInfo, want []string) bool {
		return equalsAny(t.GroupIdentity, want, false)
	}},
	"name": {name: "name", match: func(t *core.TemplateInfo, want []string) bool {
		return equalsAny(t.Name, want, false)
	}},
	"kind": {name: "kind", match: func(t *core.TemplateInfo, want []string) bool {
		return equalsAny(string(t.Kind), want, true)
	}},
	"projectType": {name: "projectType", match: func(t *core.TemplateInfo, want []string) bool {
		for _, w := range want {
			if t.SupportsProjectType(w) {
				return true
			}
		}
		return false
	}},
	"framework": {name: "framework", match: func(t *core.TemplateInfo, want []string) bool {
		for _, w := range want {
			if t.SupportsFramework(w) {
				return true
			}
		}
		return false
	}},
	"multipleInstance": {name: "multipleInstance", match: func(t *core.TemplateInfo, want []string) bool {
		return equalsAny(strconv.FormatBool(t.MultipleInstance), want, true)
	}},
	"dependency": {name: "dependency", match: func(t *core.TemplateInfo, want []string) bool {
		for _, d := range t.Dependencies {
			if equalsAny(d, want, false) {
				return true
			}
		}
		return false
	}},
}

// attributeAliases maps alternative spellings to canonical attribute names.
var attributeAliases = map[string]string{
	"type":       "kind",
	"group":      "groupIdentity",
	"frameworks": "framework",
}

func lookupAttribute(name string) (attribute, bool) {
	if canonical, ok := attributeAliases[name]; ok {
		name = canonical
	}
	a, ok := attributes[name]
	return a, ok
}

// compareNode tests a template attribute or context value against a value.
type compareNode struct {
	attr   *attribute
	ctxKey string
	negate bool
	op     string
	rhs    operand
}

func (n *compareNode) eval(t *core.TemplateInfo, ctx Context) bool {
	want := n.rhs.values(t, ctx)
	var matched bool
	if n.attr != nil {
		matched = n.attr.match(t, want)
	} else {
		matched = equalsAny(ctx[n.ctxKey], want, false)
	}
	return matched != n.negate
}

func (n *compareNode) String() string {
	lhs := "$" + n.ctxKey
	if n.attr != nil {
		lhs = n.attr.name
	}
	return lhs + " " + n.op + " " + n.rhs.String()
}
