package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/studiokit/composer/internal/core"
)

// ExplainOptions controls explain output.
type ExplainOptions struct {
	// JSON outputs structured JSON instead of human-readable text
	JSON bool
	// Writer is the output destination
	Writer io.Writer
}

// ExplainInfo carries everything the explain view reports about one run.
type ExplainInfo struct {
	ProjectType      string
	Framework        string
	TemplatesVersion string
	Queue            *core.Queue

	// Issues are the rendered diagnostics reported during the run.
	Issues []string

	// Dropped counts diagnostics lost to a full reporter buffer.
	Dropped uint64
}

// explainResult is the structured explain output.
type explainResult struct {
	Selection explainSelection `json:"selection"`
	Items     []explainItem    `json:"items"`
	Issues    []string         `json:"issues,omitempty"`
	Dropped   uint64           `json:"droppedIssues,omitempty"`
}

type explainSelection struct {
	ProjectType      string `json:"projectType"`
	Framework        string `json:"framework"`
	TemplatesVersion string `json:"templatesVersion,omitempty"`
}

type explainItem struct {
	Name       string         `json:"name"`
	Kind       string         `json:"kind"`
	Template   string         `json:"template"`
	Parameters []explainParam `json:"parameters,omitempty"`
}

// explainParam records a parameter value and the stage that last wrote it.
type explainParam struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// WriteExplanation writes the item-by-item provenance of a plan.
func WriteExplanation(info *ExplainInfo, opts ExplainOptions) error {
	result := buildExplainResult(info)

	if opts.JSON {
		encoder := json.NewEncoder(opts.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return writeExplainHuman(result, opts.Writer)
}

func buildExplainResult(info *ExplainInfo) *explainResult {
	r := &explainResult{
		Selection: explainSelection{
			ProjectType:      info.ProjectType,
			Framework:        info.Framework,
			TemplatesVersion: info.TemplatesVersion,
		},
		Items:   make([]explainItem, 0),
		Issues:  info.Issues,
		Dropped: info.Dropped,
	}
	if info.Queue == nil {
		return r
	}
	for _, gi := range info.Queue.Items() {
		item := explainItem{
			Name:     gi.Name,
			Template: gi.TemplateIdentity(),
		}
		if gi.Template != nil {
			item.Kind = gi.Template.Kind.String()
		}
		for _, name := range gi.ParameterNames() {
			item.Parameters = append(item.Parameters, explainParam{
				Name:   name,
				Value:  gi.Parameters[name],
				Source: gi.ParameterSource(name),
			})
		}
		r.Items = append(r.Items, item)
	}
	return r
}

// writeExplainHuman writes explain output in human-readable format.
func writeExplainHuman(result *explainResult, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Selection:\n")
	sb.WriteString(fmt.Sprintf("  Project type: %s\n", result.Selection.ProjectType))
	sb.WriteString(fmt.Sprintf("  Framework:    %s\n", result.Selection.Framework))
	if result.Selection.TemplatesVersion != "" {
		sb.WriteString(fmt.Sprintf("  Templates:    %s\n", result.Selection.TemplatesVersion))
	}
	sb.WriteString("\n")

	sb.WriteString("Generation Queue:\n")
	for _, item := range result.Items {
		sb.WriteString("  " + FormatItemLine(core.TemplateKind(item.Kind), item.Name, item.Template) + "\n")
		for _, p := range item.Parameters {
			sb.WriteString(fmt.Sprintf("      %s = %s %s\n", p.Name, p.Value, StyleDim.Render("("+p.Source+")")))
		}
	}
	sb.WriteString("\n")

	if len(result.Issues) > 0 || result.Dropped > 0 {
		sb.WriteString("Issues:\n")
		for _, issue := range result.Issues {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", issue))
		}
		if result.Dropped > 0 {
			sb.WriteString(fmt.Sprintf("  ⚠ %d more issue(s) dropped\n", result.Dropped))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
