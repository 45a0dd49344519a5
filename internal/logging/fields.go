// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldSpan  = "span"

	// Document fields.
	FieldTables   = "tables"
	FieldEdits    = "edits"
	FieldDocBytes = "doc_bytes"

	// Reconciliation fields.
	FieldCreated   = "created"
	FieldDestroyed = "destroyed"
	FieldRetained  = "retained"

	// Session fields.
	FieldCellSpan  = "cell_span"
	FieldUserEvent = "user_event"
	FieldForwarded = "forwarded"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
