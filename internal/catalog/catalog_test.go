package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/composer/internal/core"
	tu "github.com/studiokit/composer/internal/testutil"
)

func TestNewIndex(t *testing.T) {
	t.Run("keeps scan order and skips nil", func(t *testing.T) {
		idx, err := NewIndex("1.0", []*core.TemplateInfo{
			tu.Template("B", core.KindPage),
			nil,
			tu.Template("A", core.KindPage),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, "1.0", idx.Version())
		assert.Equal(t, "B", idx.All()[0].Identity)
		assert.Equal(t, "A", idx.All()[1].Identity)
	})

	t.Run("rejects duplicate identity", func(t *testing.T) {
		_, err := NewIndex("", []*core.TemplateInfo{
			tu.Template("A", core.KindPage),
			tu.Template("A", core.KindFeature),
		})
		assert.ErrorContains(t, err, `duplicate template identity "A"`)
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		_, err := NewIndex("", []*core.TemplateInfo{{Name: "nameless"}})
		assert.Error(t, err)
	})
}

func TestMustIndex_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustIndex("", tu.Template("A", core.KindPage), tu.Template("A", core.KindPage))
	})
}

func TestIndex_Get(t *testing.T) {
	idx := MustIndex("", tu.Template("A", core.KindPage))

	got, ok := idx.Get("A")
	require.True(t, ok)
	assert.Equal(t, "A", got.Identity)

	_, ok = idx.Get("missing")
	assert.False(t, ok)
}

func TestPredicates(t *testing.T) {
	idx := MustIndex("",
		tu.Template("wts.Proj.Blank", core.KindProject, tu.ProjectType("Blank|SplitView")),
		tu.Template("wts.Page.Main", core.KindPage, tu.Group("wts.Page.Blank")),
		tu.Template("wts.Page.Main.Prism", core.KindPage, tu.Group("wts.Page.Blank"), tu.Frameworks("Prism")),
		tu.Template("wts.Feat.Settings", core.KindFeature),
	)

	tests := []struct {
		name string
		pred Predicate
		want []string
	}{
		{"by identity", ByIdentity("wts.Feat.Settings"), []string{"wts.Feat.Settings"}},
		{"by group", ByGroup("wts.Page.Blank"), []string{"wts.Page.Main", "wts.Page.Main.Prism"}},
		{"by kind", ByKind(core.KindPage), []string{"wts.Page.Main", "wts.Page.Main.Prism"}},
		{"by framework", ByFramework("Prism"), []string{"wts.Page.Main.Prism"}},
		{"by project type", And(ByKind(core.KindProject), ByProjectType("SplitView")), []string{"wts.Proj.Blank"}},
		{"and", And(ByGroup("wts.Page.Blank"), ByFramework("MVVMBasic")), []string{"wts.Page.Main"}},
		{"no match", ByIdentity("nope"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, tmpl := range idx.FindAll(tt.pred) {
				got = append(got, tmpl.Identity)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Nil(t, idx.FindOne(ByIdentity("nope")))
}

func TestProjectTemplate(t *testing.T) {
	idx := MustIndex("",
		tu.Template("wts.Proj.Blank", core.KindProject, tu.ProjectType("Blank")),
		tu.Template("wts.Proj.Blank.Prism", core.KindProject, tu.ProjectType("Blank"), tu.Frameworks("Prism")),
		tu.Template("wts.Proj.Split", core.KindProject, tu.ProjectType("SplitView")),
		tu.Template("wts.Page.Blank", core.KindPage, tu.ProjectType("Blank")),
	)

	assert.Equal(t, "wts.Proj.Blank.Prism", ProjectTemplate(idx, "Blank", "Prism").Identity)
	assert.Equal(t, "wts.Proj.Blank", ProjectTemplate(idx, "Blank", "MVVMBasic").Identity)
	assert.Nil(t, ProjectTemplate(idx, "TabbedNav", "MVVMBasic"))

	assert.Equal(t, []string{"Blank", "SplitView"}, ProjectTypes(idx))
}

func TestProjectTemplate_RequiresDeclaredType(t *testing.T) {
	idx := MustIndex("",
		tu.Template("wts.Proj.Untyped", core.KindProject),
		tu.Template("wts.Proj.All", core.KindProject, tu.ProjectType(core.AllProjectTypes)),
		tu.Template("wts.Proj.Multi", core.KindProject, tu.ProjectType("Blank | SplitView")),
	)

	assert.Nil(t, ProjectTemplate(idx, "TabbedNav", "MVVMBasic"))
	assert.Nil(t, ProjectTemplate(idx, "", "MVVMBasic"))
	assert.Equal(t, "wts.Proj.Multi", ProjectTemplate(idx, "SplitView", "MVVMBasic").Identity)
}
