package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

// OutputFormat selects how plans, templates and layouts are written.
type OutputFormat string

const (
	// FormatYAML writes YAML, the format 'composer diff' reads.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON writes indented JSON.
	FormatJSON OutputFormat = "json"

	// FormatTable writes a styled table for terminals.
	FormatTable OutputFormat = "table"
)

var formatAliases = map[string]OutputFormat{
	"yaml":  FormatYAML,
	"yml":   FormatYAML,
	"json":  FormatJSON,
	"table": FormatTable,
}

// String returns the format name.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid reports whether f is a known format.
func (f OutputFormat) Valid() bool {
	return f == FormatYAML || f == FormatJSON || f == FormatTable
}

// Structured reports whether f is a machine-readable document format.
func (f OutputFormat) Structured() bool {
	return f == FormatYAML || f == FormatJSON
}

// Extension returns the file extension for structured formats, or "".
func (f OutputFormat) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatJSON:
		return ".json"
	default:
		return ""
	}
}

// ParseOutputFormat parses a format name case-insensitively. The second
// return value reports whether s named a known format; unknown input is
// returned unchanged.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	if f, ok := formatAliases[strings.ToLower(s)]; ok {
		return f, true
	}
	return OutputFormat(s), false
}

// ValidFormats returns the canonical format names.
func ValidFormats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTable)}
}

// writeStructured writes v as YAML or JSON, or calls renderTable for table
// output. A nil renderTable rejects the table format.
func writeStructured(w io.Writer, what string, v any, format OutputFormat, renderTable func() string) error {
	switch {
	case format == FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling %s to YAML: %w", what, err)
		}
		_, err = w.Write(data)
		return err
	case format == FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling %s to JSON: %w", what, err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case format == FormatTable && renderTable != nil:
		_, err := fmt.Fprintln(w, renderTable())
		return err
	default:
		return fmt.Errorf("unsupported output format %q for %s", format, what)
	}
}
