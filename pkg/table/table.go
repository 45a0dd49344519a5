// Package table turns GFM table nodes from the document parse tree into a
// structured row/cell model and locates table spans within a parse tree.
package table

//go:generate stringer -type=RowKind -trimprefix=Row

// RowKind classifies a table row.
type RowKind uint8

// Row kinds. GFM produces header and body rows; footer rows are part of the
// model so rendering targets can represent them uniformly.
const (
	RowBody RowKind = iota
	RowHeader
	RowFooter
)

// Cell holds the plain text content of a single table cell.
type Cell struct {
	Text string
}

// Row is an ordered sequence of cells with a header/footer/body flag.
type Row struct {
	Kind  RowKind
	Cells []Cell
}

// Table is the structured model of one source table. It is derived fresh
// from the current parse-tree node and source text on every pass and is
// never cached across edits.
type Table struct {
	Rows []Row
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the widest row's cell count.
func (t *Table) ColumnCount() int {
	max := 0
	for _, r := range t.Rows {
		if len(r.Cells) > max {
			max = len(r.Cells)
		}
	}
	return max
}
