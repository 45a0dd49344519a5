package grid

import "github.com/yaklabco/gridmark/pkg/table"

// Patch reconciles target against the table model in place and reports
// whether the target was patchable. A target that is not a *Grid (for
// example an ErrorBox from an earlier failed render) is refused; the caller
// must rebuild from scratch instead.
//
// The algorithm is deliberately simple and O(n): excess rows and cells are
// truncated from the tail, missing ones are appended at the tail, and
// everything in between is overwritten in place. Mid-sequence insertions or
// deletions are not detected as moves; every later row or cell is treated as
// content-changed-in-place. Only a true length difference causes structural
// add or remove, and only ever at the tail.
func Patch(target Element, t *table.Table) bool {
	g, ok := target.(*Grid)
	if !ok {
		return false
	}
	patchRows(g, t)
	return true
}

func patchRows(g *Grid, t *table.Table) {
	if len(g.Rows) > len(t.Rows) {
		g.Rows = g.Rows[:len(t.Rows)]
	}
	for i, want := range t.Rows {
		if i >= len(g.Rows) {
			g.Rows = append(g.Rows, newRow(want))
			continue
		}
		patchCells(g.Rows[i], want)
	}
}

func patchCells(row *Row, want table.Row) {
	if len(row.Cells) > len(want.Cells) {
		row.Cells = row.Cells[:len(want.Cells)]
	}
	for i, c := range want.Cells {
		if i >= len(row.Cells) {
			row.Cells = append(row.Cells, newCell(want.Kind, c.Text))
			continue
		}
		row.Cells[i].SetText(c.Text)
	}
}
