package query

import (
	"strings"

	"github.com/studiokit/composer/internal/core"
)

// Query is a compiled composition filter. A Query is immutable and safe for
// concurrent use.
type Query struct {
	source string
	root   node
}

// Compile parses a filter expression. An empty or blank filter is rejected:
// a composition template must state when it applies.
func Compile(filter string) (*Query, error) {
	if strings.TrimSpace(filter) == "" {
		return nil, &SyntaxError{Pos: 0, Msg: "empty filter"}
	}
	tokens, err := lex(filter)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokEOF {
		return nil, p.errorf(tok, "unexpected %s after expression", describe(tok))
	}
	return &Query{source: filter, root: root}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level filters.
func MustCompile(filter string) *Query {
	q, err := Compile(filter)
	if err != nil {
		panic(err)
	}
	return q
}

// Match evaluates the query against a template and context. Evaluation has
// no side effects.
func (q *Query) Match(t *core.TemplateInfo, ctx Context) bool {
	if t == nil {
		return false
	}
	return q.root.eval(t, ctx)
}

// Source returns the filter text the query was compiled from.
func (q *Query) Source() string {
	return q.source
}

// String returns the normalized form of the compiled expression.
func (q *Query) String() string {
	return q.root.String()
}

// NewContext builds the ambient context for a selection.
func NewContext(projectType, framework string) Context {
	return Context{
		ContextProjectType: projectType,
		ContextFramework:   framework,
	}
}
