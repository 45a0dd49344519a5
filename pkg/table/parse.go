package table

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// FromNode derives a Table from a parse-tree table node and the exact source
// it was parsed from. It is a pure function: the same node and source always
// produce the same model, and nothing is cached on the node.
func FromNode(node ast.Node, source []byte) (*Table, error) {
	if _, ok := node.(*east.Table); !ok {
		return nil, fmt.Errorf("node kind %s is not a table", node.Kind())
	}

	tbl := &Table{}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *east.TableHeader:
			tbl.Rows = append(tbl.Rows, rowFromNode(child, RowHeader, source))
		case *east.TableRow:
			tbl.Rows = append(tbl.Rows, rowFromNode(child, RowBody, source))
		default:
			return nil, fmt.Errorf("unexpected %s inside table", child.Kind())
		}
	}

	if len(tbl.Rows) == 0 {
		return nil, fmt.Errorf("table has no rows")
	}
	return tbl, nil
}

// rowFromNode collects the cells of one header or body row.
func rowFromNode(row ast.Node, kind RowKind, source []byte) Row {
	r := Row{Kind: kind}
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		r.Cells = append(r.Cells, Cell{Text: cellText(cell, source)})
	}
	return r
}

// cellText slices the source covered by a cell's inline content.
// Slicing keeps inline markup verbatim, which is what a nested edit session
// over the cell needs to see. The minimal text extent excludes inline
// delimiters (the opening ** of an emphasis, a link's brackets), so the
// extent is widened to the cell's structural boundaries, the enclosing
// pipes, before trimming the padding around the content.
func cellText(cell ast.Node, source []byte) string {
	start, stop := textExtent(cell)
	if start < 0 || stop <= start || stop > len(source) {
		return ""
	}
	for start > 0 && source[start-1] != '|' && source[start-1] != '\n' {
		start--
	}
	for stop < len(source) && source[stop] != '|' && source[stop] != '\n' {
		stop++
	}
	return string(bytes.Trim(source[start:stop], " \t"))
}

// textExtent returns the minimal byte range covering every text segment
// beneath n, or (-1, -1) if n contains no text.
func textExtent(n ast.Node) (int, int) {
	start, stop := -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			seg := t.Segment
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return start, stop
}
