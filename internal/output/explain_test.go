package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/composer/internal/core"
)

func explainFixture() *ExplainInfo {
	project := core.NewGenInfo("App", &core.TemplateInfo{Identity: "wts.Proj.Blank", Kind: core.KindProject})
	project.SetParameter(core.ParamRootNamespace, "App", core.SourceDefault)
	project.SetParameter(core.ParamUserName, "dev", core.SourceRun)

	q := core.NewQueue()
	q.Append(project)

	return &ExplainInfo{
		ProjectType: "Blank",
		Framework:   "MVVMBasic",
		Queue:       q,
		Issues:      []string{"MissingDependencyTemplate: dependency template not found"},
		Dropped:     2,
	}
}

func TestWriteExplanation_Human(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExplanation(explainFixture(), ExplainOptions{Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "Project type: Blank")
	assert.Contains(t, out, "wts.Proj.Blank")
	assert.Contains(t, out, "wts.rootNamespace = App")
	assert.Contains(t, out, "(default)")
	assert.Contains(t, out, "(run)")
	assert.Contains(t, out, "MissingDependencyTemplate")
	assert.Contains(t, out, "2 more issue(s) dropped")
}

func TestWriteExplanation_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExplanation(explainFixture(), ExplainOptions{JSON: true, Writer: &buf}))

	var got explainResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, []explainParam{
		{Name: core.ParamRootNamespace, Value: "App", Source: core.SourceDefault},
		{Name: core.ParamUserName, Value: "dev", Source: core.SourceRun},
	}, got.Items[0].Parameters)
	assert.Equal(t, uint64(2), got.Dropped)
}

func TestWriteExplanation_NilQueue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExplanation(&ExplainInfo{}, ExplainOptions{Writer: &buf}))
	assert.Contains(t, buf.String(), "Generation Queue:")
}
