package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gridmark/pkg/table"
)

// RenderStyles contains the styled renderers used to draw a grid.
type RenderStyles struct {
	Border lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style
	Cell   lipgloss.Style
	Error  lipgloss.Style
}

// DefaultRenderStyles returns unstyled renderers, suitable for tests and
// non-TTY output.
func DefaultRenderStyles() RenderStyles {
	plain := lipgloss.NewStyle()
	return RenderStyles{
		Border: plain,
		Header: plain,
		Footer: plain,
		Cell:   plain,
		Error:  plain,
	}
}

// Render draws an element as a bordered terminal grid. maxColWidth bounds
// the width of each column; zero or negative means unbounded.
func Render(el Element, st RenderStyles, maxColWidth int) string {
	switch e := el.(type) {
	case *ErrorBox:
		return st.Error.Render("[table error: " + e.Err.Error() + "]")
	case *Grid:
		return renderGrid(e, st, maxColWidth)
	default:
		return ""
	}
}

func renderGrid(g *Grid, st RenderStyles, maxColWidth int) string {
	widths := columnWidths(g, maxColWidth)
	if len(widths) == 0 {
		return st.Border.Render("++\n++")
	}

	var b strings.Builder
	b.WriteString(st.Border.Render(rule(widths, "+", "-")))
	for i, row := range g.Rows {
		b.WriteString("\n")
		b.WriteString(renderRow(row, widths, st))
		// Rule under the header block.
		if row.Kind == table.RowHeader && (i+1 >= len(g.Rows) || g.Rows[i+1].Kind != table.RowHeader) {
			b.WriteString("\n")
			b.WriteString(st.Border.Render(rule(widths, "+", "=")))
		}
	}
	b.WriteString("\n")
	b.WriteString(st.Border.Render(rule(widths, "+", "-")))
	return b.String()
}

func renderRow(row *Row, widths []int, st RenderStyles) string {
	style := st.Cell
	switch row.Kind {
	case table.RowHeader:
		style = st.Header
	case table.RowFooter:
		style = st.Footer
	}

	var b strings.Builder
	b.WriteString(st.Border.Render("|"))
	for i, w := range widths {
		text := ""
		if i < len(row.Cells) {
			text = row.Cells[i].Text()
		}
		text = runewidth.Truncate(text, w, "…")
		b.WriteString(" " + style.Render(runewidth.FillRight(text, w)) + " ")
		b.WriteString(st.Border.Render("|"))
	}
	return b.String()
}

// columnWidths measures every column by its widest cell, clamped to max.
func columnWidths(g *Grid, max int) []int {
	var widths []int
	for _, row := range g.Rows {
		for i, c := range row.Cells {
			w := runewidth.StringWidth(c.Text())
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
		if max > 0 && widths[i] > max {
			widths[i] = max
		}
	}
	return widths
}

// rule draws a horizontal border line like +----+----+.
func rule(widths []int, corner, line string) string {
	var b strings.Builder
	b.WriteString(corner)
	for _, w := range widths {
		b.WriteString(strings.Repeat(line, w+2))
		b.WriteString(corner)
	}
	return b.String()
}
