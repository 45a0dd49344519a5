package doc

import "fmt"

// Span is a half-open byte interval [From, To) into a document's current text.
// A span is only meaningful against the document state it was produced for;
// translate it through each transaction's ChangeSet to keep it valid.
type Span struct {
	// From is the byte index where the span begins (inclusive).
	From int

	// To is the byte index where the span ends (exclusive).
	To int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.To - s.From
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.From == s.To
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.From && offset < s.To
}

// Overlaps returns true if the two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.From < other.To && other.From < s.To
}

// String returns the span in [from:to) notation.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.From, s.To)
}
