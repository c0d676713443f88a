package output

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"
)

// PlanDiff is the difference between two plans.
type PlanDiff struct {
	// Added items are in the new plan only.
	Added []string

	// Removed items are in the old plan only.
	Removed []string

	// Modified items are in both plans with different parameters.
	Modified []ModifiedItem

	// Reordered is set when the shared items appear in a different order.
	Reordered bool
}

// ModifiedItem represents a modified item for rendering.
type ModifiedItem struct {
	Name string
	Diff string
}

// HasChanges reports whether the plans differ.
func (d *PlanDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0 || d.Reordered
}

// DiffPlans compares two plans item by item. Items are matched by key;
// parameter changes are rendered with dyff.
func DiffPlans(from, to *Plan, useColor bool) (*PlanDiff, error) {
	fromKeys, fromItems := indexItems(from)
	toKeys, toItems := indexItems(to)

	result := &PlanDiff{}
	var fromShared, toShared []string

	for _, key := range toKeys {
		if _, ok := fromItems[key]; !ok {
			result.Added = append(result.Added, key)
			continue
		}
		toShared = append(toShared, key)
	}

	for _, key := range fromKeys {
		newItem, ok := toItems[key]
		if !ok {
			result.Removed = append(result.Removed, key)
			continue
		}
		fromShared = append(fromShared, key)

		diff, err := diffItems(fromItems[key], newItem, useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", key, err)
		}
		if diff != "" {
			result.Modified = append(result.Modified, ModifiedItem{Name: key, Diff: diff})
		}
	}

	result.Reordered = !slices.Equal(fromShared, toShared)
	return result, nil
}

// indexItems returns item keys in plan order and the items by key.
// Repeated keys get an occurrence suffix so every item is addressable.
func indexItems(p *Plan) ([]string, map[string]PlanItem) {
	if p == nil {
		return nil, map[string]PlanItem{}
	}
	keys := make([]string, 0, len(p.Items))
	items := make(map[string]PlanItem, len(p.Items))
	seen := make(map[string]int)
	for _, item := range p.Items {
		key := item.Key()
		seen[key]++
		if n := seen[key]; n > 1 {
			key = fmt.Sprintf("%s#%d", key, n)
		}
		keys = append(keys, key)
		items[key] = item
	}
	return keys, items
}

// diffItems returns the rendered dyff report for two items, or "" when
// they are equal.
func diffItems(from, to PlanItem, useColor bool) (string, error) {
	fromYAML, err := yaml.Marshal(from)
	if err != nil {
		return "", err
	}
	toYAML, err := yaml.Marshal(to)
	if err != nil {
		return "", err
	}
	if bytes.Equal(fromYAML, toYAML) {
		return "", nil
	}
	return diffYAML(fromYAML, toYAML, useColor)
}

// diffYAML computes a YAML-aware diff using dyff.
func diffYAML(from, to []byte, useColor bool) (string, error) {
	fromInput, err := parseYAMLInput("from", from)
	if err != nil {
		return "", fmt.Errorf("parsing old YAML: %w", err)
	}
	toInput, err := parseYAMLInput("to", to)
	if err != nil {
		return "", fmt.Errorf("parsing new YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}
	return renderDyffReport(report, useColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// RenderPlanDiff renders a PlanDiff with the given styles.
func RenderPlanDiff(d *PlanDiff, styles *Styles) string {
	out := RenderDiff(d.Added, d.Removed, d.Modified, styles)
	if d.Reordered {
		out += styles.Warning.Render("Queue order changed.") + "\n"
	}
	return out
}

// RenderDiff renders added, removed and modified items followed by a summary.
func RenderDiff(added, removed []string, modified []ModifiedItem, styles *Styles) string {
	if len(added) == 0 && len(removed) == 0 && len(modified) == 0 {
		return "No changes detected.\n"
	}

	var sb strings.Builder

	if len(added) > 0 {
		sb.WriteString(styles.Success.Render("Added:"))
		sb.WriteString("\n")
		for _, name := range added {
			sb.WriteString("  + ")
			sb.WriteString(styles.Success.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(removed) > 0 {
		sb.WriteString(styles.Error.Render("Removed:"))
		sb.WriteString("\n")
		for _, name := range removed {
			sb.WriteString("  - ")
			sb.WriteString(styles.Error.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(modified) > 0 {
		sb.WriteString(styles.Warning.Render("Modified:"))
		sb.WriteString("\n")
		for _, mod := range modified {
			sb.WriteString("  ~ ")
			sb.WriteString(styles.Warning.Render(mod.Name))
			sb.WriteString("\n")
			sb.WriteString(indentDiff(mod.Diff, "    "))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(diffSummary(len(added), len(removed), len(modified)))
	sb.WriteString("\n")

	return sb.String()
}

// indentDiff indents every non-empty line of a diff.
func indentDiff(diff, indent string) string {
	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// diffSummary returns a summary string of changes.
func diffSummary(added, removed, modified int) string {
	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", removed))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", modified))
	}
	return strings.Join(parts, ", ")
}
