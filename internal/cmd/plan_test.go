package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/composer/internal/core"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
	"github.com/studiokit/composer/internal/testutil"
)

func planKeys(t *testing.T, out string) []string {
	t.Helper()
	var p output.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	keys := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		keys = append(keys, item.Key())
	}
	return keys
}

func TestPlan(t *testing.T) {
	isolate(t)
	catalogPath, selectionPath := testutil.Fixture(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "selection only",
			args: nil,
			want: []string{
				"Project/App1@wts.Proj.SplitView",
				"Page/Orders@wts.Page.Grid",
				"Composition/Orders@wts.Comp.Grid",
			},
		},
		{
			name: "with layout",
			args: []string{"--include-layout"},
			want: []string{
				"Project/App1@wts.Proj.SplitView",
				"Page/Main@wts.Page.Blank",
				"Page/Orders@wts.Page.Grid",
				"Composition/Orders@wts.Comp.Grid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"plan", "--catalog", catalogPath, "-s", selectionPath, "--project", "App1", "-o", "json"}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, planKeys(t, out))
		})
	}
}

func TestPlan_ProjectParameters(t *testing.T) {
	isolate(t)
	catalogPath, selectionPath := testutil.Fixture(t)

	out, err := execute(t, "plan", "--catalog", catalogPath, "-s", selectionPath,
		"--project", "App1", "--namespace", "Contoso.App", "--user", "ada", "-o", "json")
	require.NoError(t, err)

	var p output.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	require.NotEmpty(t, p.Items)
	params := p.Items[0].Parameters
	assert.Equal(t, "Contoso.App", params[core.ParamRootNamespace])
	assert.Equal(t, "ada", params[core.ParamUserName])
	assert.Equal(t, "1.0.0", params[core.ParamTemplatesVersion])
	assert.Equal(t, "GridData", p.Items[1].Parameters["sampleSource"])
}

func TestPlan_Explain(t *testing.T) {
	isolate(t)
	catalogPath, selectionPath := testutil.Fixture(t)

	out, err := execute(t, "plan", "--catalog", catalogPath, "-s", selectionPath, "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "sampleSource")
	assert.Contains(t, out, "wts.Comp.Grid")
}

func TestPlan_Split(t *testing.T) {
	isolate(t)
	catalogPath, selectionPath := testutil.Fixture(t)
	dir := filepath.Join(t.TempDir(), "plan")

	out, err := execute(t, "plan", "--catalog", catalogPath, "-s", selectionPath, "--project", "App1", "--split", dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "1-project-App1.yaml"),
		filepath.Join(dir, "2-page-Orders.yaml"),
		filepath.Join(dir, "3-composition-Orders.yaml"),
	}, strings.Fields(out))
	for _, p := range strings.Fields(out) {
		assert.FileExists(t, p)
	}
}

func TestPlan_MissingProject(t *testing.T) {
	isolate(t)
	catalogPath, _ := testutil.Fixture(t)
	dir := t.TempDir()
	selectionPath := testutil.WriteFile(t, dir, "selection.yaml", `projectType: TabbedNav
framework: MVVMBasic
pages:
  - name: Orders
    template: wts.Page.Grid
`)

	t.Run("best effort writes the partial plan", func(t *testing.T) {
		out, err := execute(t, "plan", "--catalog", catalogPath, "-s", selectionPath, "-o", "json")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
		assert.Equal(t, []string{
			"Page/Orders@wts.Page.Grid",
			"Composition/Orders@wts.Comp.Grid",
		}, planKeys(t, out))
	})

	t.Run("strict writes nothing", func(t *testing.T) {
		out, err := execute(t, "plan", "--catalog", catalogPath, "-s", selectionPath, "--strict")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
		assert.Empty(t, out)
	})
}

func TestPlan_InvalidInput(t *testing.T) {
	isolate(t)
	catalogPath, selectionPath := testutil.Fixture(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing selection flag", []string{"plan", "--catalog", catalogPath}, oerrors.ExitInvalidInput},
		{"bad output format", []string{"plan", "--catalog", catalogPath, "-s", selectionPath, "-o", "xml"}, oerrors.ExitInvalidInput},
		{"missing selection file", []string{"plan", "--catalog", catalogPath, "-s", selectionPath + ".missing"}, oerrors.ExitNotFound},
		{"missing catalog", []string{"plan", "--catalog", catalogPath + "-missing", "-s", selectionPath}, oerrors.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(t, err))
		})
	}
}
