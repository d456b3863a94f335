package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/qstripper/pkg/runner"
)

// manifestVersion is bumped when JSONOutput changes incompatibly.
const manifestVersion = "1.0.0"

// JSONOutput is the top-level JSON structure: a manifest of the run.
type JSONOutput struct {
	Version string           `json:"version"`
	RunID   string           `json:"runId"`
	Format  string           `json:"format"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path        string `json:"path"`
	Output      string `json:"output,omitempty"`
	Status      string `json:"status"`
	Dialect     string `json:"dialect,omitempty"`
	Paragraphs  int    `json:"paragraphs"`
	Compression string `json:"compression,omitempty"`
	BackedUp    bool   `json:"backedUp,omitempty"`
	Diff        string `json:"diff,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorKind   string `json:"errorKind,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesExported   int            `json:"filesExported"`
	FilesUnchanged  int            `json:"filesUnchanged"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesDryRun     int            `json:"filesDryRun"`
	FilesFailed     int            `json:"filesFailed"`
	Paragraphs      int            `json:"paragraphs"`
	ErrorsByKind    map[string]int `json:"errorsByKind"`
	DurationMs      int64          `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: manifestVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ErrorsByKind: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.RunID = result.RunID
	output.Format = result.Format
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        r.opts.relPath(file.Path),
			Output:      r.opts.relPath(file.Output),
			Status:      string(file.Status),
			Paragraphs:  file.Paragraphs,
			Compression: string(file.Compression),
			BackedUp:    file.BackedUp,
			Diff:        file.Diff.String(),
		}
		if file.Decoded {
			fileResult.Dialect = file.Dialect.String()
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			fileResult.ErrorKind = file.ErrorKind()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesExported:   stats.FilesExported,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesSkipped:    stats.FilesSkipped,
		FilesDryRun:     stats.FilesDryRun,
		FilesFailed:     stats.FilesFailed,
		Paragraphs:      stats.Paragraphs,
		ErrorsByKind:    make(map[string]int, len(stats.ErrorsByKind)),
		DurationMs:      stats.Duration.Milliseconds(),
	}
	for kind, n := range stats.ErrorsByKind {
		output.Summary.ErrorsByKind[kind] = n
	}

	return output
}
