package view

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gridmark/internal/logging"
	"github.com/yaklabco/gridmark/pkg/doc"
	"github.com/yaklabco/gridmark/pkg/table"
)

// Entry is one (span, view) pair in the registry.
type Entry struct {
	Span doc.Span
	View *TableView
}

// Registry is the authoritative mapping from document spans to table views.
// A Registry value is an immutable snapshot: Remap and Reconcile return new
// snapshots and never mutate in place, so readers never observe a partially
// updated registry. Entries are sorted by span and pairwise non-overlapping,
// with exactly one view per span.
//
// The session slot is shared by reference across snapshots; it is the single
// mutable resource, holding the at-most-one nested session for the document.
type Registry struct {
	entries []Entry
	slot    *SessionSlot
	logger  *log.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger routes the registry's debug logging to the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.slot = newSessionSlot(r.logger)
	return r
}

// derive builds the successor snapshot sharing the slot and logger.
func (r *Registry) derive(entries []Entry) *Registry {
	return &Registry{entries: entries, slot: r.slot, logger: r.logger}
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of all entries in span order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Spans returns the sorted spans of all live entries.
func (r *Registry) Spans() []doc.Span {
	spans := make([]doc.Span, len(r.entries))
	for i, e := range r.entries {
		spans[i] = e.Span
	}
	return spans
}

// ViewAt returns the view registered for exactly the given span.
func (r *Registry) ViewAt(sp doc.Span) (*TableView, bool) {
	for _, e := range r.entries {
		if e.Span == sp {
			return e.View, true
		}
	}
	return nil, false
}

// Slot returns the document-wide single-slot session manager.
func (r *Registry) Slot() *SessionSlot {
	return r.slot
}

// Eq reports whether two snapshots hold identical entries.
func (r *Registry) Eq(other *Registry) bool {
	if len(r.entries) != len(other.entries) {
		return false
	}
	for i, e := range r.entries {
		if other.entries[i].Span != e.Span || other.entries[i].View != e.View {
			return false
		}
	}
	return true
}

// Remap translates every stored span through an edit's change set and
// returns the resulting snapshot. Entry identity is never altered here: a
// view whose table sits after the edit keeps its object, just at new
// offsets. Entries whose content was entirely deleted collapse to an empty
// span and are swept by the next Reconcile.
func (r *Registry) Remap(cs doc.ChangeSet) *Registry {
	if cs.Empty() || len(r.entries) == 0 {
		return r
	}
	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		mapped, _ := cs.MapSpan(e.Span)
		e.View.setSpan(mapped)
		entries = append(entries, Entry{Span: mapped, View: e.View})
	}
	return r.derive(entries)
}

// Reconcile diffs the registry against the tables currently present in the
// parse tree and returns the new snapshot. Matching is by exact span
// equality. Spans present on both sides retain their view, which is handed
// the fresh node and patched in place. Current spans with no entry get a new
// view (or adopt a displaced equivalent one); entries with no current span
// are destroyed. Each view's render failure is isolated to that view.
// The pass runs to completion on every transaction, however small, and is
// O(number of tables).
func (r *Registry) Reconcile(state *doc.State, current []table.Located) *Registry {
	known := make(map[doc.Span]*TableView, len(r.entries))
	for _, e := range r.entries {
		known[e.Span] = e.View
	}

	entries := make([]Entry, 0, len(current))
	matched := make(map[*TableView]bool, len(current))

	// Retain exact span matches, refreshing node and target.
	for _, c := range current {
		v, ok := known[c.Span]
		if !ok {
			continue
		}
		v.SetNode(c.Node)
		v.setSpan(c.Span)
		v.refresh(state)
		matched[v] = true
	}

	// Everything unmatched is displaced; equivalent displaced views may be
	// adopted by a new span instead of being destroyed and re-rendered.
	var displaced []*TableView
	for _, e := range r.entries {
		if !matched[e.View] {
			displaced = append(displaced, e.View)
		}
	}

	retained := len(matched)
	created := 0
	for _, c := range current {
		if v, ok := known[c.Span]; ok && matched[v] {
			entries = append(entries, Entry{Span: c.Span, View: v})
			continue
		}
		entries = append(entries, Entry{Span: c.Span, View: r.createView(state, c, &displaced)})
		created++
	}

	for _, v := range displaced {
		r.logger.Debug("destroying table view", logging.FieldSpan, v.Span().String())
		v.Destroy()
	}

	r.logger.Debug("reconciled table views",
		logging.FieldTables, len(entries),
		logging.FieldRetained, retained,
		logging.FieldCreated, created,
		logging.FieldDestroyed, len(displaced),
	)

	return r.derive(entries)
}

// createView builds the view for a newly appeared table span, adopting a
// displaced equivalent view when one exists.
func (r *Registry) createView(state *doc.State, c table.Located, displaced *[]*TableView) *TableView {
	candidate := New(c.Span, c.Node)
	for i, old := range *displaced {
		if old.Equivalent(candidate, state) {
			*displaced = append((*displaced)[:i], (*displaced)[i+1:]...)
			old.SetNode(c.Node)
			old.setSpan(c.Span)
			old.refresh(state)
			r.logger.Debug("adopted displaced table view", logging.FieldSpan, c.Span.String())
			return old
		}
	}
	r.logger.Debug("creating table view", logging.FieldSpan, c.Span.String())
	candidate.Render(state)
	return candidate
}
