package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table collects rows for a bordered lipgloss table.
type Table struct {
	headers []string
	rows    [][]string
	numeric map[int]bool
	empty   string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, numeric: make(map[int]bool)}
}

// Row adds a row.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Numeric right-aligns the given columns.
func (t *Table) Numeric(cols ...int) *Table {
	for _, c := range cols {
		t.numeric[c] = true
	}
	return t
}

// Empty sets the text rendered instead of a table without rows.
func (t *Table) Empty(text string) *Table {
	t.empty = text
	return t
}

// String renders the table.
func (t *Table) String() string {
	if len(t.rows) == 0 && t.empty != "" {
		return StyleDim.Render(t.empty)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if t.numeric[col] {
				return tableCellStyle.Align(lipgloss.Right)
			}
			return tableCellStyle
		})
	for _, row := range t.rows {
		tbl.Row(row...)
	}
	return tbl.String()
}
