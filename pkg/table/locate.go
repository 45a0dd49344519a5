package table

import (
	"sort"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gridmark/pkg/doc"
)

// Located pairs a table node with its source span for one parse pass.
// The node pointer is only valid until the next re-parse; long-lived
// structures must key on the span and refresh the node every pass.
type Located struct {
	Span doc.Span
	Node ast.Node
}

// Locate walks the parse tree and returns every table in the document,
// sorted by span and with overlapping spans dropped. Tree traversal order is
// not trusted: the result is sorted explicitly before the overlap sweep.
func Locate(tree ast.Node, source []byte) []Located {
	var found []Located
	_ = ast.Walk(tree, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*east.Table); !ok {
			return ast.WalkContinue, nil
		}
		if sp, ok := nodeSpan(n, source); ok {
			found = append(found, Located{Span: sp, Node: n})
		}
		return ast.WalkSkipChildren, nil
	})

	sort.Slice(found, func(i, j int) bool {
		if found[i].Span.From != found[j].Span.From {
			return found[i].Span.From < found[j].Span.From
		}
		return found[i].Span.To < found[j].Span.To
	})

	// Drop any table overlapping its predecessor; the registry invariant
	// requires pairwise disjoint spans.
	out := found[:0]
	lastEnd := -1
	for _, l := range found {
		if l.Span.From < lastEnd {
			continue
		}
		out = append(out, l)
		lastEnd = l.Span.To
	}
	return out
}

// Spans projects the span of each located table.
func Spans(located []Located) []doc.Span {
	spans := make([]doc.Span, len(located))
	for i, l := range located {
		spans[i] = l.Span
	}
	return spans
}

// nodeSpan computes a table node's source span: the byte extent of its text
// content widened to whole lines, so the leading pipe of the first row and
// the trailing pipe of the last row fall inside the span.
func nodeSpan(n ast.Node, source []byte) (doc.Span, bool) {
	start, stop := textExtent(n)
	if start < 0 || stop <= start || stop > len(source) {
		return doc.Span{}, false
	}
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	for stop < len(source) && source[stop] != '\n' {
		stop++
	}
	return doc.Span{From: start, To: stop}, true
}
