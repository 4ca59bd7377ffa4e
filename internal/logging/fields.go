package logging

// Structured field names.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldBackup = "backup"
	FieldConfig = "config"

	// Pipeline.
	FieldBytes      = "bytes"
	FieldRecords    = "records"
	FieldNames      = "names"
	FieldDirectives = "directives"
	FieldRemovals   = "removals"
	FieldStyles     = "styles"
	FieldSkipped    = "skipped"
	FieldReason     = "reason"
	FieldID         = "id"
	FieldLookup     = "lookup"
	FieldLanguage   = "language"

	// Watch mode.
	FieldEvent    = "event"
	FieldDuration = "duration"

	// Build info.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
