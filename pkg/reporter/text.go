package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/qstripper/internal/ui/pretty"
	"github.com/yaklabco/qstripper/pkg/runner"
)

// TextReporter formats results as styled terminal output, one line per file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		if r.opts.Quiet && file.Status != runner.StatusFailed && file.Status != runner.StatusExported {
			continue
		}
		fmt.Fprint(r.bw, r.styles.FormatOutcome(file, r.opts.relPath(file.Path), r.opts.relPath(file.Output)))
		fmt.Fprint(r.bw, r.styles.FormatDiff(file.Diff, r.opts.relPath(file.Output)))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failures(result), nil
}
