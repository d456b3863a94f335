package runner

import (
	"errors"
	"time"

	"github.com/yaklabco/qstripper/pkg/charset"
	"github.com/yaklabco/qstripper/pkg/export"
	"github.com/yaklabco/qstripper/pkg/fsutil"
	"github.com/yaklabco/qstripper/pkg/quill"
)

// Status is what happened to one file.
type Status string

const (
	// StatusExported means the export was written.
	StatusExported Status = "exported"
	// StatusUnchanged means an identical export already existed.
	StatusUnchanged Status = "unchanged"
	// StatusSkipped means an export existed and overwriting was not enabled.
	StatusSkipped Status = "skipped"
	// StatusDryRun means the file decoded and nothing was written.
	StatusDryRun Status = "dry-run"
	// StatusFailed means the file could not be read, decoded or written.
	StatusFailed Status = "failed"
)

// FileOutcome is the result for one source file.
type FileOutcome struct {
	// Path is the source file path.
	Path string

	// Output is the export path, set even when nothing was written.
	Output string

	Status Status

	// Decoded is set once the source parsed as a Quill document; Dialect and
	// Paragraphs are meaningful only then.
	Decoded    bool
	Dialect    charset.Dialect
	Paragraphs int

	// Compression is how the source was stored.
	Compression fsutil.Compression

	// BackedUp is set when a previous export was copied aside before overwriting.
	BackedUp bool

	// Diff is set when diffs were requested and the export differs from what is on disk.
	Diff *export.Diff

	// Error is set when Status is StatusFailed.
	Error error
}

// ErrorKind classifies Error: a decode error kind, "io", or "" for no error.
func (o FileOutcome) ErrorKind() string {
	if o.Error == nil {
		return ""
	}
	if kind := quill.ErrorKind(o.Error); kind != "" {
		return kind
	}
	if errors.Is(o.Error, ErrOutputCollision) {
		return "output_collision"
	}
	return "io"
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	FilesExported  int
	FilesUnchanged int
	FilesSkipped   int
	FilesDryRun    int
	FilesFailed    int

	// Paragraphs is the total decoded across all files.
	Paragraphs int

	// ErrorsByKind maps ErrorKind values to counts.
	ErrorsByKind map[string]int

	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// RunID identifies this run in logs and reports.
	RunID string

	// Format is the writer used.
	Format string

	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ErrorsByKind: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch outcome.Status {
	case StatusFailed:
		r.Stats.FilesFailed++
		r.Stats.ErrorsByKind[outcome.ErrorKind()]++
		return
	case StatusExported:
		r.Stats.FilesExported++
	case StatusUnchanged:
		r.Stats.FilesUnchanged++
	case StatusSkipped:
		r.Stats.FilesSkipped++
	case StatusDryRun:
		r.Stats.FilesDryRun++
	}

	r.Stats.Paragraphs += outcome.Paragraphs
}
