package view

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/gridmark/internal/logging"
	"github.com/yaklabco/gridmark/pkg/doc"
	"github.com/yaklabco/gridmark/pkg/session"
)

// SessionSlot owns the document's single nested edit session. At most one
// session exists across the whole document: Open explicitly closes any
// previous session before creating the next, never last-writer-wins.
type SessionSlot struct {
	active *session.Session
	owner  *TableView
	logger *log.Logger
}

func newSessionSlot(logger *log.Logger) *SessionSlot {
	return &SessionSlot{logger: logger}
}

// Active returns the currently open session, or nil.
func (s *SessionSlot) Active() *session.Session {
	return s.active
}

// Owner returns the view owning the active session, or nil.
func (s *SessionSlot) Owner() *TableView {
	return s.owner
}

// Open starts a nested edit session over cellSpan, owned by the given view.
// Any previously open session anywhere in the document is closed first.
func (s *SessionSlot) Open(owner *TableView, cellSpan doc.Span, state *doc.State) *session.Session {
	if s.active != nil {
		s.logger.Debug("closing previous cell session", logging.FieldCellSpan, s.active.Span().String())
		s.Close()
	}

	sess := session.New(cellSpan, state.Slice(cellSpan), func() {
		if s.owner != nil {
			s.owner.session = nil
		}
		s.active = nil
		s.owner = nil
	})
	owner.session = sess
	s.active = sess
	s.owner = owner
	s.logger.Debug("opened cell session", logging.FieldCellSpan, cellSpan.String())
	return sess
}

// Close shuts down the active session, if any. Idempotent.
func (s *SessionSlot) Close() {
	if s.active == nil {
		return
	}
	// Session.Close runs the onClose hook, which clears the slot.
	s.active.Close()
}

// Forward mirrors a parent transaction into the active session.
// A no-op when no session is open.
func (s *SessionSlot) Forward(tx *doc.Transaction) (*doc.Transaction, bool) {
	if s.active == nil {
		return nil, false
	}
	mirrored, ok := s.active.Forward(tx)
	// Forwarding a whole-cell deletion closes the session and empties the
	// slot, so the span has to be read back from the still-open session.
	if s.active != nil {
		s.logger.Debug("mirrored parent transaction",
			logging.FieldCellSpan, s.active.Span().String(),
			logging.FieldForwarded, ok,
		)
	}
	return mirrored, ok
}
