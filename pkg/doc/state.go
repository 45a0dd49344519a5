// Package doc provides the reference host document: an immutable editor
// state with a Markdown parse tree, transactions with change sets and
// annotations, and a state-field contract for extensions that must track
// every edit.
package doc

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// markdown is the shared GFM parser used to build parse trees.
// A goldmark instance is stateless across Parse calls, so one is enough.
//
//nolint:gochecknoglobals // Shared parser instance is intentional
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// FieldSpec describes a state field: a value carried on every State and
// recomputed through each transaction. Fields are how extensions observe
// edits without subscribing to callbacks.
type FieldSpec struct {
	// Name identifies the field for State.Field lookups.
	Name string

	// Init computes the field's value for a freshly created state.
	Init func(st *State) any

	// Update computes the field's next value from the previous value and
	// the transaction being applied. It runs synchronously within Apply,
	// after the new document text and tree are available via tx.State().
	Update func(value any, tx *Transaction) any

	// Compare reports whether two field values are equivalent.
	// Used by hosts for change detection; may be nil, which means
	// values are never considered equal.
	Compare func(a, b any) bool
}

// State is an immutable snapshot of the document: its text, a lazily built
// parse tree, and the current value of every registered field.
// Apply produces the successor state; a State is never mutated in place.
type State struct {
	text   string
	fields []FieldSpec
	values []any
	tree   ast.Node
}

// NewState creates the initial state for text and runs every field's Init.
func NewState(txt string, fields ...FieldSpec) *State {
	st := &State{
		text:   txt,
		fields: fields,
		values: make([]any, len(fields)),
	}
	for i, f := range fields {
		if f.Init != nil {
			st.values[i] = f.Init(st)
		}
	}
	return st
}

// Doc returns the full document text.
func (st *State) Doc() string {
	return st.text
}

// Bytes returns the document text as a byte slice.
// Callers must not modify the returned slice.
func (st *State) Bytes() []byte {
	return []byte(st.text)
}

// Len returns the document length in bytes.
func (st *State) Len() int {
	return len(st.text)
}

// Slice returns the text within span, clamped to the document bounds.
func (st *State) Slice(sp Span) string {
	from, to := sp.From, sp.To
	if from < 0 {
		from = 0
	}
	if to > len(st.text) {
		to = len(st.text)
	}
	if from >= to {
		return ""
	}
	return st.text[from:to]
}

// Tree returns the parse tree for the current text, building it on first use.
// Node objects are fresh per state; they must never be held across states.
func (st *State) Tree() ast.Node {
	if st.tree == nil {
		st.tree = markdown.Parser().Parse(
			text.NewReader([]byte(st.text)),
			parser.WithContext(parser.NewContext()),
		)
	}
	return st.tree
}

// Field returns the current value of the named field.
func (st *State) Field(name string) (any, bool) {
	for i, f := range st.fields {
		if f.Name == name {
			return st.values[i], true
		}
	}
	return nil, false
}

// FieldChanged reports whether the named field's value differs between this
// state and prev, using the field's Compare function.
func (st *State) FieldChanged(prev *State, name string) bool {
	for i, f := range st.fields {
		if f.Name != name {
			continue
		}
		if prev == nil || f.Compare == nil {
			return true
		}
		old, ok := prev.Field(name)
		if !ok {
			return true
		}
		return !f.Compare(old, st.values[i])
	}
	return false
}

// Apply commits a change set against this state and returns the successor
// state together with the transaction that produced it. Field updaters run
// in registration order, synchronously, before Apply returns.
func (st *State) Apply(changes ChangeSet, annotations ...Annotation) (*State, *Transaction) {
	next := &State{
		text:   changes.Apply(st.text),
		fields: st.fields,
		values: make([]any, len(st.fields)),
	}

	tx := &Transaction{
		startState:  st,
		state:       next,
		changes:     changes,
		annotations: annotations,
	}

	for i, f := range st.fields {
		if f.Update != nil {
			next.values[i] = f.Update(st.values[i], tx)
		} else {
			next.values[i] = st.values[i]
		}
	}

	return next, tx
}

// Transaction describes one committed edit: the states on either side, the
// change set that separates them, and any attached metadata.
type Transaction struct {
	startState  *State
	state       *State
	changes     ChangeSet
	annotations []Annotation
}

// StartState returns the state the transaction was applied to.
func (tx *Transaction) StartState() *State {
	return tx.startState
}

// State returns the state produced by the transaction.
func (tx *Transaction) State() *State {
	return tx.state
}

// Changes returns the transaction's change set.
func (tx *Transaction) Changes() ChangeSet {
	return tx.changes
}

// DocChanged returns true if the transaction modified the document text.
func (tx *Transaction) DocChanged() bool {
	return !tx.changes.Empty()
}

// NewDoc returns the document text after the transaction.
func (tx *Transaction) NewDoc() string {
	return tx.state.Doc()
}

// Slice returns post-transaction text within span.
func (tx *Transaction) Slice(sp Span) string {
	return tx.state.Slice(sp)
}

// Annotation returns the value attached under key, if any.
func (tx *Transaction) Annotation(key AnnotationKey) (any, bool) {
	for _, a := range tx.annotations {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// Annotations returns a copy of all attached annotations.
func (tx *Transaction) Annotations() []Annotation {
	out := make([]Annotation, len(tx.annotations))
	copy(out, tx.annotations)
	return out
}

// UserEvent returns the user-intent metadata attached to the transaction,
// or the empty string if none was recorded.
func (tx *Transaction) UserEvent() string {
	if v, ok := tx.Annotation(UserEventKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
