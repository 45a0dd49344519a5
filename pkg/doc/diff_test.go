package doc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/yaklabco/gridmark/pkg/doc"
)

func TestDiff_Basic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		old  string
		new  string
	}{
		{name: "identical", old: "hello", new: "hello"},
		{name: "append", old: "hello", new: "hello world"},
		{name: "prepend", old: "world", new: "hello world"},
		{name: "delete middle", old: "hello cruel world", new: "hello world"},
		{name: "replace word", old: "| A | B |", new: "| A | B2 |"},
		{name: "from empty", old: "", new: "anything"},
		{name: "to empty", old: "anything", new: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cs := doc.Diff(tt.old, tt.new)
			assert.Equal(t, tt.new, cs.Apply(tt.old))
		})
	}
}

func TestDiff_IdenticalIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, doc.Diff("same", "same").Empty())
}

func TestDiff_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		oldText := rapid.String().Draw(t, "old")
		newText := rapid.String().Draw(t, "new")

		cs := doc.Diff(oldText, newText)
		if cs.Apply(oldText) != newText {
			t.Fatalf("Diff(%q, %q) does not reproduce the new text", oldText, newText)
		}
	})
}

// Positions must stay ordered through a change set, whatever the edit.
func TestMapPos_Monotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		oldText := rapid.StringN(0, 64, -1).Draw(t, "old")
		newText := rapid.StringN(0, 64, -1).Draw(t, "new")
		cs := doc.Diff(oldText, newText)

		a := rapid.IntRange(0, len(oldText)).Draw(t, "a")
		b := rapid.IntRange(a, len(oldText)).Draw(t, "b")
		assoc := rapid.SampledFrom([]int{-1, 1}).Draw(t, "assoc")

		ma, mb := cs.MapPos(a, assoc), cs.MapPos(b, assoc)
		if ma > mb {
			t.Fatalf("mapping inverted order: %d -> %d but %d -> %d", a, ma, b, mb)
		}
		if ma < 0 || ma > len(newText) || mb > len(newText) {
			t.Fatalf("mapped position out of bounds: %d, %d (len %d)", ma, mb, len(newText))
		}
	})
}
