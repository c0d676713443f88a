package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/composer/internal/core"
)

var blankPage = &core.TemplateInfo{
	Identity:      "wts.Page.Blank.MVVMBasic",
	GroupIdentity: "wts.Page.Blank",
	Name:          "Blank",
	ProjectType:   "Blank|SplitView",
	Kind:          core.KindPage,
	Frameworks:    []string{"MVVMBasic", "CodeBehind"},
	Dependencies:  []string{"wts.Feat.SettingsStorage"},
}

func TestCompile_Match(t *testing.T) {
	ctx := NewContext("SplitView", "MVVMBasic")

	tests := []struct {
		name   string
		filter string
		want   bool
	}{
		{"context equality", `$projectType == SplitView`, true},
		{"context inequality", `$projectType != SplitView`, false},
		{"context mismatch", `$framework == Prism`, false},
		{"identity", `identity == wts.Page.Blank.MVVMBasic`, true},
		{"group identity", `groupIdentity == "wts.Page.Blank"`, true},
		{"group alias", `group == wts.Page.Blank`, true},
		{"kind is case-insensitive", `kind == page`, true},
		{"type alias", `type == Page`, true},
		{"kind mismatch", `kind == Feature`, false},
		{"framework membership", `framework == CodeBehind`, true},
		{"framework missing", `framework == Prism`, false},
		{"framework against context", `framework == $framework`, true},
		{"project type alternatives", `projectType == Blank`, true},
		{"project type mismatch", `projectType == TabbedNav`, false},
		{"in list", `framework in [Prism, MVVMBasic]`, true},
		{"in list miss", `identity in [a, b]`, false},
		{"multiple instance", `multipleInstance == false`, true},
		{"dependency", `dependency == wts.Feat.SettingsStorage`, true},
		{"conjunction", `$projectType == SplitView & kind == Page & framework == MVVMBasic`, true},
		{"conjunction short-circuit false", `$projectType == SplitView & kind == Feature`, false},
		{"disjunction", `kind == Feature | kind == Page`, true},
		{"double operators", `kind == Feature || kind == Page && name == Blank`, true},
		{"negation", `!(kind == Feature)`, true},
		{"negated group", `!($projectType == SplitView & kind == Page)`, false},
		{"precedence and binds tighter", `kind == Feature & name == Nope | name == Blank`, true},
		{"single quoted", `name == 'Blank'`, true},
		{"missing context key", `$language == CSharp`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Compile(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Match(blankPage, ctx))
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		wantMsg string
	}{
		{"empty", "", "empty filter"},
		{"blank", "   ", "empty filter"},
		{"unknown attribute", "color == red", `unknown template attribute "color"`},
		{"missing operator", "kind Page", "expected comparison operator"},
		{"single equals", "kind = Page", "expected '=='"},
		{"missing value", "kind ==", "expected value"},
		{"unbalanced paren", "(kind == Page", "expected ')'"},
		{"trailing token", "kind == Page Feature", "unexpected identifier"},
		{"dangling and", "kind == Page &", "expected attribute or context reference"},
		{"in without list", "kind in Page", "'in' requires a list value"},
		{"unterminated list", "kind in [Page, Feature", "expected ',' or ']'"},
		{"unterminated string", `name == "Blank`, "unterminated string"},
		{"bare dollar", "$ == x", "expected context key"},
		{"bad character", "kind == Page ; x", "unexpected character"},
		{"nested list", "kind in [[Page]]", "nested lists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Compile(tt.filter)
			require.Error(t, err)
			assert.Nil(t, q)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr))
		})
	}
}

func TestQuery_MatchNilTemplate(t *testing.T) {
	q := MustCompile(`$projectType == Blank`)
	assert.False(t, q.Match(nil, NewContext("Blank", "")))
}

func TestQuery_MatchIsSideEffectFree(t *testing.T) {
	q := MustCompile(`framework in [MVVMBasic] & $projectType == SplitView`)
	ctx := NewContext("SplitView", "MVVMBasic")
	before := *blankPage

	for i := 0; i < 3; i++ {
		assert.True(t, q.Match(blankPage, ctx))
	}
	assert.Equal(t, before, *blankPage)
	assert.Equal(t, Context{"projectType": "SplitView", "framework": "MVVMBasic"}, ctx)
}

func TestQuery_String(t *testing.T) {
	q := MustCompile(`$projectType == SplitView & (kind == Page | kind != Feature) & framework in [a, "b"]`)
	assert.Equal(t,
		`($projectType == "SplitView" & (kind == "Page" | kind != "Feature") & framework in ["a", "b"])`,
		q.String())
	assert.Equal(t, `$projectType == SplitView & (kind == Page | kind != Feature) & framework in [a, "b"]`, q.Source())
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("kind ==") })
}
