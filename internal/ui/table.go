package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows in aligned, borderless columns. The last column is
// styled as a muted note.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates a table with the given column titles
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) *Table {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return t
}

// Render returns the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	last := len(t.Columns) - 1
	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(true).
		Headers(t.Columns...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = columnStyle
			case col == last && last > 0:
				style = noteStyle
			default:
				style = valueStyle
			}
			return style.PaddingRight(1)
		})

	return lipgloss.NewStyle().MarginLeft(2).Render(tbl.Render())
}

// String implements fmt.Stringer
func (t *Table) String() string {
	return t.Render()
}
