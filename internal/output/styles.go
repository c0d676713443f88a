package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiokit/composer/internal/core"
)

// Color palette. Named constants for all ANSI 256 colors used in the CLI;
// never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: item names, template identities.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for added plan items and Project templates.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modified plan items and Feature templates.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed plan items.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for error summaries (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorBlue is used for Page templates and table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorMagenta is used for Composition templates.
	ColorMagenta = lipgloss.Color("13")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (item names, template identities).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the styles used by multi-line renderers.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
}

// GetStyles returns the colored style set.
func GetStyles() *Styles {
	return &Styles{
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
	}
}

// NoColorStyles returns a style set that renders text unchanged.
func NoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Success: plain,
		Error:   plain,
		Warning: plain,
		Bold:    plain,
		Muted:   plain,
	}
}

// Plan change status constants.
const (
	StatusAdded     = "added"
	StatusModified  = "modified"
	StatusUnchanged = "unchanged"
	StatusRemoved   = "removed"
)

// StatusStyle returns the lipgloss style for a plan change status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusAdded:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusModified:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(ColorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// KindStyle returns the style for a template kind.
func KindStyle(kind core.TemplateKind) lipgloss.Style {
	switch kind {
	case core.KindProject:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case core.KindPage:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	case core.KindFeature:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case core.KindComposition:
		return lipgloss.NewStyle().Foreground(ColorMagenta)
	default:
		return lipgloss.NewStyle()
	}
}

// minItemColumnWidth keeps the template column aligned across item lines.
const minItemColumnWidth = 40

// FormatItemLine renders a queued item with its template identity
// right-aligned after the item path.
//
// Format: i:<Kind/name>  <template>
func FormatItemLine(kind core.TemplateKind, name, template string) string {
	path := fmt.Sprintf("%s/%s", kind, name)

	padding := minItemColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("i:") +
		KindStyle(kind).Render(kind.String()) + "/" + StyleNoun.Render(name) +
		strings.Repeat(" ", padding) +
		StyleDim.Render(template)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
