// Package session provides the nested edit session for a focused table cell
// and the mirror protocol that keeps it textually consistent with the parent
// document without creating an edit-feedback loop.
package session

import (
	"github.com/yaklabco/gridmark/pkg/doc"
)

// Session is a child editing surface scoped to one table cell. It owns its
// own document state holding the cell's content, and remembers the cell's
// span in parent-document coordinates so parent edits can be mapped in.
// At most one session exists per document at a time; the owning view layer
// enforces that.
type Session struct {
	span       doc.Span
	state      *doc.State
	closed     bool
	forwarding bool
	onClose    func()
}

// New creates a session over a cell span holding the given content.
// onClose, if non-nil, runs exactly once when the session is closed.
func New(span doc.Span, content string, onClose func()) *Session {
	return &Session{
		span:    span,
		state:   doc.NewState(content),
		onClose: onClose,
	}
}

// Span returns the cell's current span in parent-document coordinates.
func (s *Session) Span() doc.Span {
	return s.span
}

// State returns the session's current document state.
func (s *Session) State() *doc.State {
	return s.state
}

// Doc returns the session's current text.
func (s *Session) Doc() string {
	return s.state.Doc()
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool {
	return s.closed
}

// Close shuts the session down. Idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.onClose != nil {
		s.onClose()
		s.onClose = nil
	}
}

// Apply commits an independent, session-originated edit to the session's own
// document. It does not touch the parent; use Commit to propagate.
func (s *Session) Apply(changes doc.ChangeSet, annotations ...doc.Annotation) *doc.Transaction {
	if s.closed {
		return nil
	}
	next, tx := s.state.Apply(changes, annotations...)
	s.state = next
	return tx
}

// Commit builds the parent-document edit that replaces the cell's span with
// the session's current text. The result carries the mirror marker so that
// applying it to the parent does not forward it back into this session.
// Edits made inside the session reach the parent only through this explicit
// commit, never implicitly. The session's span is retargeted to cover the
// committed text; the caller is expected to apply the returned change set.
func (s *Session) Commit() (doc.ChangeSet, []doc.Annotation) {
	cs := doc.MustChangeSet(doc.Change{From: s.span.From, To: s.span.To, Insert: s.Doc()})
	s.span = doc.Span{From: s.span.From, To: s.span.From + len(s.Doc())}
	annots := []doc.Annotation{
		{Key: MirrorAnnotation, Value: true},
		doc.UserEvent("table.session.commit"),
	}
	return cs, annots
}
