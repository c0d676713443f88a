package composer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/core"
	tu "github.com/studiokit/composer/internal/testutil"
)

func layoutCatalog() *catalog.Index {
	return catalog.MustIndex("",
		tu.Template("wts.Proj.Blank", core.KindProject, tu.ProjectType("Blank"), tu.Layout(
			core.LayoutItem{Name: "Main", TemplateGroupIdentity: "wts.Page.Main"},
			core.LayoutItem{Name: "Rules", TemplateGroupIdentity: "wts.Comp.Rules"},
			core.LayoutItem{Name: "Gone", TemplateGroupIdentity: "wts.Page.Gone"},
			core.LayoutItem{Name: "Settings", TemplateGroupIdentity: "wts.Feat.Settings", Readonly: true},
		)),
		tu.Template("wts.Page.Main.Prism", core.KindPage, tu.Group("wts.Page.Main"), tu.Frameworks("Prism")),
		tu.Template("wts.Page.Main.MVVMBasic", core.KindPage, tu.Group("wts.Page.Main")),
		tu.Composition("wts.Comp.Rules", "kind == Page"),
		tu.Template("wts.Feat.Settings", core.KindFeature),
	)
}

func collectLayout(c *Composer, pt, framework string) ([]string, error) {
	var names []string
	for e, err := range c.GetLayoutTemplates(pt, framework) {
		if err != nil {
			return names, err
		}
		names = append(names, e.Item.Name+"="+e.Template.Identity)
	}
	return names, nil
}

func TestGetLayoutTemplates_SkipsInvalidEntries(t *testing.T) {
	c, rec := newTestComposer(layoutCatalog(), core.ModeBestEffort)

	got, err := collectLayout(c, "Blank", fw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Main=wts.Page.Main.MVVMBasic", "Settings=wts.Feat.Settings"}, got)
	assert.Equal(t, []core.IssueKind{core.InvalidLayoutKind, core.MissingLayoutTemplate}, rec.Kinds())
}

func TestGetLayoutTemplates_Restartable(t *testing.T) {
	c, _ := newTestComposer(layoutCatalog(), core.ModeBestEffort)
	seq := c.GetLayoutTemplates("Blank", fw)

	var first, second int
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	assert.Equal(t, 2, first)
	assert.Equal(t, first, second)
}

func TestGetLayoutTemplates_EarlyBreak(t *testing.T) {
	c, rec := newTestComposer(layoutCatalog(), core.ModeBestEffort)

	var names []string
	for e := range c.GetLayoutTemplates("Blank", fw) {
		names = append(names, e.Item.Name)
		break
	}
	assert.Equal(t, []string{"Main"}, names)
	assert.Zero(t, rec.Len(), "entries after the break are never validated")
}

func TestGetLayoutTemplates_NoProject(t *testing.T) {
	c, rec := newTestComposer(layoutCatalog(), core.ModeStrict)
	for _, target := range [][2]string{{"TabbedNav", fw}, {"Blank", "Prism"}} {
		names, err := collectLayout(c, target[0], target[1])
		assert.NoError(t, err)
		assert.Empty(t, names)
	}
	assert.Zero(t, rec.Len())
}

func TestGetLayoutTemplates_StrictYieldsError(t *testing.T) {
	c, rec := newTestComposer(layoutCatalog(), core.ModeStrict)

	var (
		entries []LayoutEntry
		errs    []error
	)
	for e, err := range c.GetLayoutTemplates("Blank", fw) {
		entries = append(entries, e)
		errs = append(errs, err)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "wts.Page.Main.MVVMBasic", entries[0].Template.Identity)
	assert.NoError(t, errs[0])

	assert.Equal(t, "Rules", entries[1].Item.Name)
	assert.Nil(t, entries[1].Template)
	assert.True(t, errors.Is(errs[1], core.ErrInvalidLayoutKind))
	assert.Zero(t, rec.Len())
}

func TestResolveLayout(t *testing.T) {
	t.Run("best effort", func(t *testing.T) {
		c, _ := newTestComposer(layoutCatalog(), core.ModeBestEffort)
		entries, err := c.ResolveLayout("Blank", fw)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[1].Item.Readonly)

		pages, features := LayoutSelection(entries)
		assert.Equal(t, []core.SelectedItem{{Name: "Main", Template: entries[0].Template}}, pages)
		assert.Equal(t, []core.SelectedItem{{Name: "Settings", Template: entries[1].Template}}, features)
	})

	t.Run("strict", func(t *testing.T) {
		c, _ := newTestComposer(layoutCatalog(), core.ModeStrict)
		entries, err := c.ResolveLayout("Blank", fw)
		assert.Nil(t, entries)
		assert.True(t, errors.Is(err, core.ErrInvalidLayoutKind))

		var verr *core.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "wts.Proj.Blank", verr.Template)
		assert.Equal(t, "wts.Comp.Rules", verr.Reference)
	})
}

func TestMergeLayout(t *testing.T) {
	blank := tu.Template("wts.Page.Blank", core.KindPage)
	grid := tu.Template("wts.Page.Grid", core.KindPage, tu.MultipleInstance())
	settings := tu.Template("wts.Feat.Settings", core.KindFeature)

	entries := []LayoutEntry{
		{Item: core.LayoutItem{Name: "Main"}, Template: blank},
		{Item: core.LayoutItem{Name: "Second"}, Template: blank},
		{Item: core.LayoutItem{Name: "List"}, Template: grid},
		{Item: core.LayoutItem{Name: "Settings"}, Template: settings},
	}

	tests := []struct {
		name         string
		pages        []core.SelectedItem
		features     []core.SelectedItem
		wantPages    []string
		wantFeatures []string
	}{
		{
			name:         "empty selection",
			wantPages:    []string{"Main", "List"},
			wantFeatures: []string{"Settings"},
		},
		{
			name:         "selected single instance wins",
			pages:        []core.SelectedItem{{Name: "Home", Template: blank}},
			features:     []core.SelectedItem{{Name: "Prefs", Template: settings}},
			wantPages:    []string{"List", "Home"},
			wantFeatures: []string{"Prefs"},
		},
		{
			name:         "multiple instance is kept twice",
			pages:        []core.SelectedItem{{Name: "Orders", Template: grid}},
			wantPages:    []string{"Main", "List", "Orders"},
			wantFeatures: []string{"Settings"},
		},
	}

	names := func(items []core.SelectedItem) []string {
		out := []string{}
		for _, item := range items {
			out = append(out, item.Name)
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := &core.UserSelection{ProjectType: "Blank", Framework: fw, Pages: tt.pages, Features: tt.features}
			MergeLayout(sel, entries)
			assert.Equal(t, tt.wantPages, names(sel.Pages))
			assert.Equal(t, tt.wantFeatures, names(sel.Features))
		})
	}
}
