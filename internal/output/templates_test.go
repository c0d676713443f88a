package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/composer/internal/core"
)

func sampleTemplates() []*core.TemplateInfo {
	return []*core.TemplateInfo{
		{Identity: "wts.Page.Grid", Kind: core.KindPage, Name: "Grid", Frameworks: []string{"MVVMBasic"}, Dependencies: []string{"wts.Feat.SampleData"}},
		{Identity: "wts.Feat.SampleData", Kind: core.KindFeature, Name: "Sample Data", Frameworks: []string{"MVVMBasic", "Prism"}},
	}
}

func TestWriteTemplates(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTemplates(&buf, sampleTemplates(), FormatYAML))
		out := buf.String()
		assert.Contains(t, out, "identity: wts.Page.Grid")
		assert.Contains(t, out, "- wts.Feat.SampleData")
	})

	t.Run("json keeps order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTemplates(&buf, sampleTemplates(), FormatJSON))

		var got []TemplateSummary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "wts.Page.Grid", got[0].Identity)
		assert.Equal(t, []string{"MVVMBasic", "Prism"}, got[1].Frameworks)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTemplates(&buf, sampleTemplates(), FormatTable))
		out := buf.String()
		assert.Contains(t, out, "IDENTITY")
		assert.Contains(t, out, "MVVMBasic, Prism")
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, WriteTemplates(&bytes.Buffer{}, nil, OutputFormat("dir")))
	})
}

func TestWriteLayout(t *testing.T) {
	rows := []LayoutRow{
		{Name: "Main", Template: "wts.Page.Blank", Kind: "Page", Readonly: true},
		{Name: "Settings", Template: "wts.Feat.Settings", Kind: "Feature"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLayout(&buf, rows, FormatJSON))
	var got []LayoutRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rows, got)

	buf.Reset()
	require.NoError(t, WriteLayout(&buf, rows, FormatTable))
	assert.Contains(t, buf.String(), "READONLY")
	assert.Contains(t, buf.String(), "wts.Feat.Settings")
}
