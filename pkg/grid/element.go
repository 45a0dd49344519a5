// Package grid provides the rendering primitives for table views, a grid
// container holding row and cell elements, and the in-place patcher that
// reconciles an existing grid against a freshly derived table model.
// Element pointer identity is what the patcher preserves: a retained row or
// cell keeps its pointer, so state anchored to it (focus, a nested edit
// session) survives the patch.
package grid

import "github.com/yaklabco/gridmark/pkg/table"

// Element is a materialized rendering target. The concrete types are *Grid
// for a successfully rendered table and *ErrorBox for a degraded placeholder.
type Element interface {
	element()
}

// Grid is the container element for one rendered table.
type Grid struct {
	Rows []*Row
}

func (*Grid) element() {}

// Row is a single rendered table row.
type Row struct {
	Kind  table.RowKind
	Cells []*Cell
}

// Cell is a single rendered table cell. Header is fixed at creation time,
// mirroring how a header cell element differs structurally from a body cell.
type Cell struct {
	Header bool
	text   string
}

// Text returns the cell's current content.
func (c *Cell) Text() string {
	return c.text
}

// SetText overwrites the cell's content in place, preserving its identity.
func (c *Cell) SetText(s string) {
	c.text = s
}

// ErrorBox is the inert placeholder element for a table that failed to
// render. It carries the failure so the host can surface it.
type ErrorBox struct {
	Err error
}

func (*ErrorBox) element() {}

// New materializes a fresh grid for a table model.
func New(t *table.Table) *Grid {
	g := &Grid{}
	for _, r := range t.Rows {
		g.Rows = append(g.Rows, newRow(r))
	}
	return g
}

func newRow(r table.Row) *Row {
	row := &Row{Kind: r.Kind}
	for _, c := range r.Cells {
		row.Cells = append(row.Cells, newCell(r.Kind, c.Text))
	}
	return row
}

func newCell(kind table.RowKind, text string) *Cell {
	return &Cell{Header: kind == table.RowHeader, text: text}
}
