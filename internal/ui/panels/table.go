// Package panels renders the fixed parts of a selector page: header bar,
// item table and footer.
package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/LISSConsulting/LISSTech.Flux/internal/ui"
)

// minFlexWidth is the narrowest a fill column gets.
const minFlexWidth = 8

// Column describes one table column. A zero Width fills the remaining
// space, shared evenly between all fill columns.
type Column struct {
	Title string
	Width int
	// Style colors a cell by its content. Nil uses the theme text style.
	Style func(cell string) lipgloss.Style
}

// TableProps holds the data needed to render a table.
type TableProps struct {
	Columns []Column
	Rows    [][]string
	Cursor  int // -1 for none
	Empty   string
}

// PageSize returns the number of rows a table of the given height shows.
func PageSize(height int) int {
	if height <= 1 {
		return 1
	}
	return height - 1
}

// Offset returns the first visible row so that cursor stays on screen.
func Offset(cursor, rows, height int) int {
	page := PageSize(height)
	if cursor < page || rows <= page {
		return 0
	}
	off := cursor - page + 1
	if last := rows - page; off > last {
		off = last
	}
	return off
}

// ColumnWidths resolves fill columns for the given total width. Columns are
// separated by one space.
func ColumnWidths(cols []Column, width int) []int {
	widths := make([]int, len(cols))
	fixed, fills := 0, 0
	for i, c := range cols {
		widths[i] = c.Width
		fixed += c.Width
		if c.Width == 0 {
			fills++
		}
	}
	if len(cols) > 1 {
		fixed += len(cols) - 1
	}
	if fills == 0 {
		return widths
	}
	each := (width - fixed) / fills
	if each < minFlexWidth {
		each = minFlexWidth
	}
	for i, c := range cols {
		if c.Width == 0 {
			widths[i] = each
		}
	}
	return widths
}

// RenderTable renders a title row followed by height-1 item rows. Every
// line is exactly width cells wide.
func RenderTable(props TableProps, width, height int, theme ui.Theme) string {
	if height < 1 || width < 1 {
		return ""
	}
	widths := ColumnWidths(props.Columns, width)

	lines := make([]string, 0, height)
	titles := make([]string, len(props.Columns))
	for i, c := range props.Columns {
		titles[i] = c.Title
	}
	lines = append(lines, theme.Dim.Bold(true).Render(Fit(joinCells(titles, widths), width)))

	page := PageSize(height)
	if len(props.Rows) == 0 && props.Empty != "" {
		lines = append(lines, theme.Dim.Render(Fit("  "+props.Empty, width)))
	}
	off := Offset(props.Cursor, len(props.Rows), height)
	for i := off; i < len(props.Rows) && i < off+page; i++ {
		lines = append(lines, renderRow(props, widths, i, width, theme))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func renderRow(props TableProps, widths []int, i, width int, theme ui.Theme) string {
	row := props.Rows[i]
	selected := i == props.Cursor

	var b strings.Builder
	used := 0
	for c, col := range props.Columns {
		if c > 0 {
			b.WriteByte(' ')
			used++
		}
		cell := ""
		if c < len(row) {
			cell = row[c]
		}
		text := Fit(cell, widths[c])
		style := theme.Text
		switch {
		case selected:
			style = theme.Selected
		case col.Style != nil:
			style = col.Style(cell)
		}
		b.WriteString(style.Render(text))
		used += widths[c]
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return ansi.Truncate(b.String(), width, "")
}

func joinCells(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = Fit(c, widths[i])
	}
	return strings.Join(parts, " ")
}

// Fit truncates s to w cells, ending in an ellipsis when cut, and pads it
// with spaces to exactly w cells.
func Fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
