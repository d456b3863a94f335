package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldFormat    = "format"
	FieldOutputDir = "output_dir"
	FieldItalic    = "italic"
	FieldDryRun    = "dry_run"
	FieldOverwrite = "overwrite"
	FieldJobs      = "jobs"

	// Document fields.
	FieldDialect    = "dialect"
	FieldParagraphs = "paragraphs"
	FieldErrorKind  = "error_kind"
	FieldOffset     = "offset"
	FieldStatus     = "status"

	// Run statistics.
	FieldRunID           = "run_id"
	FieldFilesDiscovered = "files_discovered"
	FieldFilesExported   = "files_exported"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
