// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldSource     = "source"

	// Configuration fields.
	FieldFormat   = "format"
	FieldFlavor   = "flavor"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"
	FieldDebounce = "debounce"

	// Conversion fields.
	FieldBytesIn  = "bytes_in"
	FieldBytesOut = "bytes_out"
	FieldChanged  = "changed"
	FieldEvent    = "event"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWritten    = "files_written"
	FieldFilesFailed     = "files_failed"
	FieldFilesSkipped    = "files_skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
