package cmdutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/diagnostics"
	"github.com/studiokit/composer/internal/output"
	tu "github.com/studiokit/composer/internal/testutil"
)

func captureLog(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Verbose: verbose, Timestamps: output.BoolPtr(false)})
	output.SetLogWriter(&buf)
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })
	return &buf
}

func TestPrintValidationError_Plain(t *testing.T) {
	buf := captureLog(t, false)
	PrintValidationError("catalog validation failed", errors.New("boom"))
	assert.Contains(t, buf.String(), "catalog validation failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestWriteQueueLog(t *testing.T) {
	buf := captureLog(t, true)

	gen := core.NewGenInfo("Orders", tu.Template("wts.Page.Grid", core.KindPage))
	gen.SetParameter("sampleSource", "GridData", "composition:wts.Comp.Grid")
	q := core.NewQueue()
	q.Append(gen)

	WriteQueueLog(q)

	out := buf.String()
	assert.Contains(t, out, "Orders")
	assert.Contains(t, out, "wts.Page.Grid")
	assert.Contains(t, out, "sampleSource")
	assert.Contains(t, out, "composition:wts.Comp.Grid")
}

func TestPrintIssues(t *testing.T) {
	t.Run("silent without issues", func(t *testing.T) {
		buf := captureLog(t, false)
		PrintIssues(nil, 0)
		assert.Empty(t, buf.String())
	})

	t.Run("counts issues and drops", func(t *testing.T) {
		buf := captureLog(t, false)
		PrintIssues([]diagnostics.Issue{diagnostics.NewIssue(errors.New("x"))}, 2)
		assert.Contains(t, buf.String(), "composed with 3 validation issue(s)")
	})
}
