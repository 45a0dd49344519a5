// Package view owns the rendered table views for a document: the TableView
// object backing one grid, the span-keyed registry that survives edits, and
// the single-slot manager for the nested cell edit session.
package view

import (
	"fmt"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/gridmark/pkg/doc"
	"github.com/yaklabco/gridmark/pkg/grid"
	"github.com/yaklabco/gridmark/pkg/session"
	"github.com/yaklabco/gridmark/pkg/table"
)

// TableView is the stateful rendering unit for one table. It is identified
// by its current span; the parse-tree node it holds is refreshed on every
// pass and never used as identity. A view may own at most one nested edit
// session, opened through the registry's session slot.
type TableView struct {
	span      doc.Span
	node      ast.Node
	target    grid.Element
	session   *session.Session
	destroyed bool
}

// New creates a view for a table at span backed by node.
// Nothing is rendered until Render or a reconcile pass runs.
func New(span doc.Span, node ast.Node) *TableView {
	return &TableView{span: span, node: node}
}

// Span returns the view's current source span.
func (v *TableView) Span() doc.Span {
	return v.span
}

// Target returns the view's current rendering target, or nil before the
// first render.
func (v *TableView) Target() grid.Element {
	return v.target
}

// Session returns the view's nested edit session, or nil.
func (v *TableView) Session() *session.Session {
	return v.session
}

// Destroyed reports whether Destroy has run.
func (v *TableView) Destroyed() bool {
	return v.destroyed
}

// SetNode replaces the parse-tree node used to derive the table model on the
// next render or patch. The reconciler calls this for every span that
// survives a re-parse, because node objects are not stable across parses.
func (v *TableView) SetNode(node ast.Node) {
	v.node = node
}

func (v *TableView) setSpan(sp doc.Span) {
	v.span = sp
}

// Render materializes the rendering target from the view's node and the
// current document state. A failure to derive the table model never
// propagates: the result is an inert ErrorBox carrying the failure.
func (v *TableView) Render(state *doc.State) (el grid.Element) {
	defer func() {
		if r := recover(); r != nil {
			el = &grid.ErrorBox{Err: fmt.Errorf("render table %s: %v", v.span, r)}
			v.target = el
		}
	}()

	tbl, err := table.FromNode(v.node, state.Bytes())
	if err != nil {
		el = &grid.ErrorBox{Err: err}
		v.target = el
		return el
	}
	el = grid.New(tbl)
	v.target = el
	return el
}

// Patch updates an existing rendering target in place from current document
// state. It reports false when the patch was not applicable, either because
// the target has an incompatible shape or because the table model could not
// be derived; the caller must then rebuild with Render.
func (v *TableView) Patch(target grid.Element, state *doc.State) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	tbl, err := table.FromNode(v.node, state.Bytes())
	if err != nil {
		return false
	}
	return grid.Patch(target, tbl)
}

// refresh patches the existing target, falling back to a full rebuild when
// patching is refused or no target exists yet.
func (v *TableView) refresh(state *doc.State) {
	if v.target != nil && v.Patch(v.target, state) {
		return
	}
	v.Render(state)
}

// Destroy releases the view's nested session and rendering target.
// Idempotent.
func (v *TableView) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	if v.session != nil {
		v.session.Close()
		v.session = nil
	}
	v.target = nil
}

// Equivalent reports whether two views are interchangeable renderings of the
// same content under state: their spans' source text matches and neither
// owns an active session. A live session always forces false, so a session's
// rendering target is never silently discarded for a lookalike.
func (v *TableView) Equivalent(other *TableView, state *doc.State) bool {
	if v.session != nil || other.session != nil {
		return false
	}
	return state.Slice(v.span) == state.Slice(other.span)
}
