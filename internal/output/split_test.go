package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSplitPlan(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plan")
	p := &Plan{Items: []PlanItem{
		{Name: "App1", Template: "wts.Proj.SplitView", Kind: "Project"},
		{Name: "Order List", Template: "wts.Page.Grid", Kind: "Page", Parameters: map[string]string{"sampleSource": "GridData"}},
		{Name: "Order List", Template: "wts.Comp.Grid", Kind: "Composition"},
	}}

	paths, err := WriteSplitPlan(p, SplitOptions{OutDir: dir, Format: FormatYAML})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "1-project-App1.yaml"),
		filepath.Join(dir, "2-page-Order-List.yaml"),
		filepath.Join(dir, "3-composition-Order-List.yaml"),
	}, paths)

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), "sampleSource: GridData")
	assert.Contains(t, string(data), "template: wts.Page.Grid")
}

func TestWriteSplitPlan_Errors(t *testing.T) {
	_, err := WriteSplitPlan(&Plan{Items: []PlanItem{{Name: "x"}}}, SplitOptions{OutDir: t.TempDir(), Format: FormatTable})
	assert.Error(t, err)

	paths, err := WriteSplitPlan(&Plan{}, SplitOptions{OutDir: t.TempDir(), Format: FormatJSON})
	assert.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSplitFilename(t *testing.T) {
	tests := []struct {
		pos, width int
		item       PlanItem
		format     OutputFormat
		want       string
	}{
		{1, 1, PlanItem{Name: "Main", Kind: "Page"}, FormatYAML, "1-page-Main.yaml"},
		{7, 2, PlanItem{Name: "a/b:c", Kind: "Feature"}, FormatJSON, "07-feature-a-b-c.json"},
		{12, 2, PlanItem{Name: `"Q"`, Kind: "Composition"}, FormatYAML, "12-composition-Q.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFilename(tt.pos, tt.width, tt.item, tt.format))
		})
	}
}
