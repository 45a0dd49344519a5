package session

import (
	"github.com/yaklabco/gridmark/pkg/doc"
)

// MirrorAnnotation is the loop-prevention marker. Every transaction the
// mirror dispatches into a session carries it, and any incoming transaction
// that already carries it is skipped: it originated from a prior forward
// cycle or from a session commit and must not be re-forwarded.
const MirrorAnnotation doc.AnnotationKey = "gridmark.session.mirror"

// Forward replays a parent-document transaction into the session so both
// stay textually consistent. It returns the transaction dispatched into the
// session, or false when nothing was forwarded:
//
//   - transactions with an empty change set are never forwarded
//   - transactions carrying the mirror marker are silently skipped
//   - changes outside the cell's span adjust the span but forward nothing
//   - a change deleting the whole cell closes the session
//
// Dispatch is synchronous and may be re-entrant; both the marker check and a
// per-session forwarding-in-progress guard run before every forward, not
// just at the top level.
func (s *Session) Forward(parent *doc.Transaction) (*doc.Transaction, bool) {
	if s == nil || s.closed || s.forwarding {
		return nil, false
	}
	if !parent.DocChanged() {
		return nil, false
	}
	if _, tagged := parent.Annotation(MirrorAnnotation); tagged {
		return nil, false
	}

	changes := parent.Changes()
	local := clipToSpan(changes, s.span)

	mapped, ok := changes.MapSpan(s.span)
	if !ok {
		s.Close()
		return nil, false
	}
	s.span = mapped

	if local.Empty() {
		return nil, false
	}

	annots := []doc.Annotation{{Key: MirrorAnnotation, Value: true}}
	if event := parent.UserEvent(); event != "" {
		annots = append(annots, doc.UserEvent(event))
	}

	s.forwarding = true
	defer func() { s.forwarding = false }()

	next, tx := s.state.Apply(local, annots...)
	s.state = next
	return tx, true
}

// clipToSpan translates the parts of a parent change set that fall inside
// the cell span into session-local coordinates. Pure insertions exactly at
// a span boundary belong to the cell, mirroring how the span itself maps.
// Changes straddling a boundary contribute only their in-span deletion;
// replacement text attaches to the cell only when the change starts inside.
func clipToSpan(cs doc.ChangeSet, sp doc.Span) doc.ChangeSet {
	var local []doc.Change
	for _, c := range cs.Changes() {
		if c.From == c.To {
			if c.From < sp.From || c.From > sp.To {
				continue
			}
			local = append(local, doc.Change{From: c.From - sp.From, To: c.From - sp.From, Insert: c.Insert})
			continue
		}
		if c.To <= sp.From || c.From >= sp.To {
			continue
		}
		lo, hi := c.From, c.To
		if lo < sp.From {
			lo = sp.From
		}
		if hi > sp.To {
			hi = sp.To
		}
		insert := ""
		if c.From >= sp.From {
			insert = c.Insert
		}
		local = append(local, doc.Change{From: lo - sp.From, To: hi - sp.From, Insert: insert})
	}
	return doc.MustChangeSet(local...)
}
