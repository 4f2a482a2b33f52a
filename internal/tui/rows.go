package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const columnGap = 2

// Column is one table column. Weight shares out the width left after the
// fixed columns; Min is never undercut.
type Column struct {
	Title  string
	Weight int
	Min    int
}

// Table renders fixed-width rows for the list pages.
type Table struct {
	Columns []Column
	widths  []int
}

// NewTable sizes cols for a total width.
func NewTable(totalWidth int, cols ...Column) Table {
	t := Table{Columns: cols}
	t.widths = computeColumnWidths(totalWidth, cols)
	return t
}

// Widths returns the computed column widths.
func (t Table) Widths() []int { return t.widths }

// computeColumnWidths splits totalWidth across cols by weight, reserving the
// row prefix and the gaps between columns.
func computeColumnWidths(totalWidth int, cols []Column) []int {
	widths := make([]int, len(cols))
	prefix := 2
	usable := totalWidth - prefix - columnGap*(len(cols)-1)

	weights, mins := 0, 0
	for _, c := range cols {
		weights += c.Weight
		mins += c.Min
	}
	if usable <= mins || weights == 0 {
		for i, c := range cols {
			widths[i] = c.Min
		}
		return widths
	}

	spare := usable - mins
	used := 0
	for i, c := range cols {
		widths[i] = c.Min + spare*c.Weight/weights
		used += widths[i]
	}
	// Rounding leftovers go to the first weighted column.
	for i, c := range cols {
		if c.Weight > 0 {
			widths[i] += usable - used
			break
		}
	}
	return widths
}

// padOrTruncate fits s to exactly width cells, ANSI-aware.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	n := lipgloss.Width(s)
	if n > width {
		return ansi.Truncate(s, width, "…")
	}
	if n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Header renders the column titles.
func (t Table) Header() string {
	cells := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cells[i] = padOrTruncate(c.Title, t.widths[i])
	}
	return "  " + StyleHelp.Bold(true).Render(strings.Join(cells, strings.Repeat(" ", columnGap)))
}

// Row renders one line. Cells may already carry styles; the selected row
// gets a marker and the highlight colour.
func (t Table) Row(cells []string, selected bool) string {
	out := make([]string, len(t.Columns))
	for i := range t.Columns {
		var c string
		if i < len(cells) {
			c = cells[i]
		}
		if selected {
			c = ansi.Strip(c)
		}
		out[i] = padOrTruncate(c, t.widths[i])
	}
	line := strings.Join(out, strings.Repeat(" ", columnGap))
	if selected {
		return StyleHighlight.Render("› " + line)
	}
	return "  " + line
}
