package doc

import (
	"fmt"
	"sort"
	"strings"
)

// Change represents a single text replacement: the bytes in [From, To) are
// replaced by Insert. An insertion has From == To; a deletion has Insert == "".
type Change struct {
	// From is the byte index where the change begins (inclusive).
	From int

	// To is the byte index where the change ends (exclusive).
	To int

	// Insert is the replacement text.
	Insert string
}

// IsInsert returns true if the change inserts without removing anything.
func (c Change) IsInsert() bool {
	return c.From == c.To && c.Insert != ""
}

// IsDelete returns true if the change removes text without replacement.
func (c Change) IsDelete() bool {
	return c.From < c.To && c.Insert == ""
}

// ChangeSet is a sorted, non-overlapping set of changes describing one
// document transaction. The zero value is the empty change set.
// A ChangeSet doubles as the position map between the pre- and post-edit
// document: MapPos and MapSpan translate old offsets into new ones.
type ChangeSet struct {
	changes []Change
}

// ChangeError describes an invalid or conflicting change.
type ChangeError struct {
	Change  Change
	Message string
}

func (e *ChangeError) Error() string {
	return fmt.Sprintf("invalid change [%d:%d): %s", e.Change.From, e.Change.To, e.Message)
}

// NewChangeSet validates, sorts, and assembles changes into a ChangeSet.
// Changes must have non-negative, ordered offsets and must not overlap.
func NewChangeSet(changes ...Change) (ChangeSet, error) {
	if len(changes) == 0 {
		return ChangeSet{}, nil
	}

	sorted := make([]Change, len(changes))
	copy(sorted, changes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})

	for i, c := range sorted {
		if c.From < 0 {
			return ChangeSet{}, &ChangeError{Change: c, Message: "start offset is negative"}
		}
		if c.To < c.From {
			return ChangeSet{}, &ChangeError{Change: c, Message: "end offset is before start offset"}
		}
		if i > 0 && c.From < sorted[i-1].To {
			return ChangeSet{}, &ChangeError{Change: c, Message: "overlaps preceding change"}
		}
	}

	return ChangeSet{changes: sorted}, nil
}

// MustChangeSet is like NewChangeSet but panics on invalid input.
// Intended for literals in tests and internal call sites with known-good data.
func MustChangeSet(changes ...Change) ChangeSet {
	cs, err := NewChangeSet(changes...)
	if err != nil {
		panic(err)
	}
	return cs
}

// Empty returns true if the change set modifies no text.
func (cs ChangeSet) Empty() bool {
	return len(cs.changes) == 0
}

// Len returns the number of individual changes.
func (cs ChangeSet) Len() int {
	return len(cs.changes)
}

// Changes returns a copy of the individual changes in ascending order.
func (cs ChangeSet) Changes() []Change {
	out := make([]Change, len(cs.changes))
	copy(out, cs.changes)
	return out
}

// Apply splices every change into text and returns the result.
// Offsets refer to the original text.
func (cs ChangeSet) Apply(text string) string {
	if len(cs.changes) == 0 {
		return text
	}

	var out strings.Builder
	delta := 0
	for _, c := range cs.changes {
		delta += len(c.Insert) - (c.To - c.From)
	}
	out.Grow(len(text) + delta)

	cursor := 0
	for _, c := range cs.changes {
		out.WriteString(text[cursor:c.From])
		out.WriteString(c.Insert)
		cursor = c.To
	}
	out.WriteString(text[cursor:])

	return out.String()
}

// MapPos translates a pre-edit offset into the post-edit document.
// assoc controls which side the position sticks to when text is inserted
// exactly at pos: assoc <= 0 keeps the position before the insertion,
// assoc > 0 moves it after. Positions inside a replaced range collapse to
// the start (assoc <= 0) or end (assoc > 0) of the replacement.
func (cs ChangeSet) MapPos(pos, assoc int) int {
	diff := 0
	for _, c := range cs.changes {
		// Pure insertion exactly at pos: assoc decides the side.
		if c.From == pos && c.To == pos {
			if assoc <= 0 {
				break
			}
			diff += len(c.Insert)
			continue
		}
		if c.From >= pos {
			break
		}
		if c.To <= pos {
			diff += len(c.Insert) - (c.To - c.From)
			continue
		}
		// pos is strictly inside the replaced range.
		if assoc > 0 {
			return c.From + diff + len(c.Insert)
		}
		return c.From + diff
	}
	return pos + diff
}

// MapSpan translates a span through the change set. Edges map inclusively:
// text inserted exactly at either boundary is absorbed into the span, so
// content that grows at its edges keeps a span matching a re-parse. The
// second return value is false if the span's content was entirely deleted.
func (cs ChangeSet) MapSpan(sp Span) (Span, bool) {
	from := cs.MapPos(sp.From, -1)
	to := cs.MapPos(sp.To, 1)
	if to < from {
		to = from
	}
	mapped := Span{From: from, To: to}
	if !sp.IsEmpty() && mapped.IsEmpty() {
		return mapped, false
	}
	return mapped, true
}

// Touches returns true if any change modifies text inside the span.
// Insertions exactly at the span boundaries do not count as touching.
func (cs ChangeSet) Touches(sp Span) bool {
	for _, c := range cs.changes {
		if c.From < sp.To && c.To > sp.From {
			return true
		}
		if c.From == c.To && c.From > sp.From && c.From < sp.To {
			return true
		}
	}
	return false
}
