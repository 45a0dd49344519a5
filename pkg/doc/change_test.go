package doc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gridmark/pkg/doc"
)

func TestNewChangeSet_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		changes []doc.Change
		wantErr bool
	}{
		{
			name:    "empty is valid",
			changes: nil,
		},
		{
			name: "sorted non-overlapping",
			changes: []doc.Change{
				{From: 0, To: 2, Insert: "a"},
				{From: 5, To: 7, Insert: "b"},
			},
		},
		{
			name: "unsorted input is accepted and sorted",
			changes: []doc.Change{
				{From: 5, To: 7, Insert: "b"},
				{From: 0, To: 2, Insert: "a"},
			},
		},
		{
			name: "adjacent changes do not overlap",
			changes: []doc.Change{
				{From: 0, To: 2},
				{From: 2, To: 4},
			},
		},
		{
			name:    "negative offset",
			changes: []doc.Change{{From: -1, To: 2}},
			wantErr: true,
		},
		{
			name:    "end before start",
			changes: []doc.Change{{From: 5, To: 3}},
			wantErr: true,
		},
		{
			name: "overlapping changes",
			changes: []doc.Change{
				{From: 0, To: 4, Insert: "a"},
				{From: 3, To: 6, Insert: "b"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cs, err := doc.NewChangeSet(tt.changes...)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *doc.ChangeError
				assert.ErrorAs(t, err, &cerr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.changes), cs.Len())
		})
	}
}

func TestChangeSet_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		changes []doc.Change
		want    string
	}{
		{
			name: "empty set returns original",
			text: "hello world",
			want: "hello world",
		},
		{
			name:    "replacement",
			text:    "hello world",
			changes: []doc.Change{{From: 0, To: 5, Insert: "goodbye"}},
			want:    "goodbye world",
		},
		{
			name:    "insertion",
			text:    "hello world",
			changes: []doc.Change{{From: 5, To: 5, Insert: ","}},
			want:    "hello, world",
		},
		{
			name:    "deletion",
			text:    "hello world",
			changes: []doc.Change{{From: 5, To: 11}},
			want:    "hello",
		},
		{
			name: "multiple changes splice against original offsets",
			text: "hello world",
			changes: []doc.Change{
				{From: 0, To: 5, Insert: "hi"},
				{From: 6, To: 11, Insert: "there"},
			},
			want: "hi there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cs := doc.MustChangeSet(tt.changes...)
			assert.Equal(t, tt.want, cs.Apply(tt.text))
		})
	}
}

func TestChangeSet_MapPos(t *testing.T) {
	t.Parallel()

	// "hello world" with "hello" replaced by "hey" and "!" inserted at 11.
	cs := doc.MustChangeSet(
		doc.Change{From: 0, To: 5, Insert: "hey"},
		doc.Change{From: 11, To: 11, Insert: "!"},
	)

	tests := []struct {
		name  string
		pos   int
		assoc int
		want  int
	}{
		{name: "before all changes", pos: 0, assoc: -1, want: 0},
		{name: "inside replacement sticks to start", pos: 2, assoc: -1, want: 0},
		{name: "inside replacement sticks to end", pos: 2, assoc: 1, want: 3},
		{name: "after replacement shifts by delta", pos: 7, assoc: -1, want: 5},
		{name: "at insertion point stays before", pos: 11, assoc: -1, want: 9},
		{name: "at insertion point moves after", pos: 11, assoc: 1, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, cs.MapPos(tt.pos, tt.assoc))
		})
	}
}

func TestChangeSet_MapSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		changes     []doc.Change
		span        doc.Span
		want        doc.Span
		wantDeleted bool
	}{
		{
			name:    "edit before span shifts both edges",
			changes: []doc.Change{{From: 0, To: 3, Insert: "abcdef"}},
			span:    doc.Span{From: 10, To: 20},
			want:    doc.Span{From: 13, To: 23},
		},
		{
			name:    "edit after span leaves it alone",
			changes: []doc.Change{{From: 30, To: 32, Insert: "x"}},
			span:    doc.Span{From: 10, To: 20},
			want:    doc.Span{From: 10, To: 20},
		},
		{
			name:    "edit inside span moves only the end",
			changes: []doc.Change{{From: 12, To: 14, Insert: "wider"}},
			span:    doc.Span{From: 10, To: 20},
			want:    doc.Span{From: 10, To: 23},
		},
		{
			name:    "insertion at end edge is absorbed",
			changes: []doc.Change{{From: 20, To: 20, Insert: "tail"}},
			span:    doc.Span{From: 10, To: 20},
			want:    doc.Span{From: 10, To: 24},
		},
		{
			name:    "insertion at start edge is absorbed",
			changes: []doc.Change{{From: 10, To: 10, Insert: "hh"}},
			span:    doc.Span{From: 10, To: 20},
			want:    doc.Span{From: 10, To: 22},
		},
		{
			name:        "deleting exactly the span collapses it",
			changes:     []doc.Change{{From: 10, To: 20}},
			span:        doc.Span{From: 10, To: 20},
			want:        doc.Span{From: 10, To: 10},
			wantDeleted: true,
		},
		{
			name:        "deleting a superset collapses it",
			changes:     []doc.Change{{From: 8, To: 25}},
			span:        doc.Span{From: 10, To: 20},
			want:        doc.Span{From: 8, To: 8},
			wantDeleted: true,
		},
		{
			name:    "partial deletion shrinks without collapsing",
			changes: []doc.Change{{From: 15, To: 25}},
			span:    doc.Span{From: 10, To: 20},
			want:    doc.Span{From: 10, To: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cs := doc.MustChangeSet(tt.changes...)
			got, ok := cs.MapSpan(tt.span)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, !tt.wantDeleted, ok)
		})
	}
}

func TestChangeSet_Touches(t *testing.T) {
	t.Parallel()

	sp := doc.Span{From: 10, To: 20}

	tests := []struct {
		name   string
		change doc.Change
		want   bool
	}{
		{name: "edit before", change: doc.Change{From: 0, To: 5, Insert: "x"}, want: false},
		{name: "edit after", change: doc.Change{From: 25, To: 30}, want: false},
		{name: "edit inside", change: doc.Change{From: 12, To: 14, Insert: "x"}, want: true},
		{name: "edit straddling start", change: doc.Change{From: 8, To: 12}, want: true},
		{name: "insertion at start boundary", change: doc.Change{From: 10, To: 10, Insert: "x"}, want: false},
		{name: "insertion at end boundary", change: doc.Change{From: 20, To: 20, Insert: "x"}, want: false},
		{name: "insertion strictly inside", change: doc.Change{From: 15, To: 15, Insert: "x"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cs := doc.MustChangeSet(tt.change)
			assert.Equal(t, tt.want, cs.Touches(sp))
		})
	}
}
