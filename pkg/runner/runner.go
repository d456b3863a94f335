package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/qstripper/internal/logging"
	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/export"
	"github.com/yaklabco/qstripper/pkg/fsutil"
	"github.com/yaklabco/qstripper/pkg/quill"
)

// Runner decodes Quill files and exports them with a Writer.
type Runner struct {
	// Writer renders each decoded document.
	Writer export.Writer

	// DecodeOptions are passed to quill.Decode for every file.
	DecodeOptions []quill.Option
}

// New creates a new Runner with the given writer.
func New(writer export.Writer, opts ...quill.Option) *Runner {
	return &Runner{Writer: writer, DecodeOptions: opts}
}

// NewFromConfig creates a Runner using the writer and decode settings in cfg.
func NewFromConfig(cfg *config.Config) (*Runner, error) {
	writer, err := export.New(string(cfg.Export.To), export.OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}
	return New(writer, DecodeOptions(cfg)...), nil
}

// DecodeOptions returns the quill options implied by cfg.
func DecodeOptions(cfg *config.Config) []quill.Option {
	if enabled, ok := cfg.Decode.Italic.Forced(); ok {
		return []quill.Option{quill.WithItalic(enabled)}
	}
	return nil
}

// Run discovers files under opts.Paths and converts them concurrently.
// A file that fails is recorded in its outcome and the run carries on;
// cancellation is checked between files.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	runID := ulid.Make().String()
	logger := logging.FromContext(ctx).With(logging.FieldRunID, runID)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:  runID,
		Format: r.Writer.Name(),
		Files:  make([]FileOutcome, 0, len(files)),
		Stats:  newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	cfg := opts.config()
	outputs := r.planOutputs(files, cfg.Export.OutputDir)

	// Each worker writes only its own slot, so order follows discovery.
	outcomes := make([]FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)
	for idx, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[idx] = r.processFile(ctx, path, outputs[idx], cfg)
			logOutcome(logger, outcomes[idx])
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// output is the planned destination for one source.
type output struct {
	path string
	err  error
}

// planOutputs computes every export path up front so that two sources mapping
// to the same output are caught deterministically: the first in path order wins.
func (r *Runner) planOutputs(files []string, outputDir string) []output {
	outputs := make([]output, len(files))
	claimed := make(map[string]string, len(files))
	for idx, path := range files {
		dest := OutputPath(path, outputDir, r.Writer.Extension())
		outputs[idx].path = dest
		if owner, ok := claimed[dest]; ok {
			outputs[idx].err = fmt.Errorf("%w: %s (from %s)", ErrOutputCollision, dest, owner)
			continue
		}
		claimed[dest] = path
	}
	return outputs
}

// processFile reads, decodes and exports one file.
func (r *Runner) processFile(ctx context.Context, path string, dest output, cfg *config.Config) FileOutcome {
	outcome := FileOutcome{Path: path, Output: dest.path}
	fail := func(err error) FileOutcome {
		outcome.Status = StatusFailed
		outcome.Error = err
		return outcome
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fail(err)
	}
	outcome.Compression = info.Compression

	doc, err := quill.Decode(content, r.DecodeOptions...)
	if err != nil {
		return fail(fmt.Errorf("decode %s: %w", path, err))
	}
	outcome.Decoded = true
	outcome.Dialect = doc.Dialect()
	outcome.Paragraphs = len(doc.Paragraphs())

	if dest.err != nil {
		return fail(dest.err)
	}

	var buf bytes.Buffer
	if err := r.Writer.Write(&buf, doc); err != nil {
		return fail(fmt.Errorf("export %s: %w", path, err))
	}

	existing, readErr := os.ReadFile(dest.path)
	exists := readErr == nil
	if cfg.Diff {
		outcome.Diff = export.NewDiff(dest.path, existing, buf.Bytes())
	}

	if cfg.DryRun {
		outcome.Status = StatusDryRun
		return outcome
	}

	if exists {
		if bytes.Equal(existing, buf.Bytes()) {
			outcome.Status = StatusUnchanged
			return outcome
		}
		if !cfg.Export.Overwrite {
			outcome.Status = StatusSkipped
			return outcome
		}
		if cfg.Backups.Enabled {
			created, err := fsutil.CreateBackup(ctx, dest.path)
			if err != nil {
				return fail(err)
			}
			outcome.BackedUp = created
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, dest.path, buf.Bytes(), fsutil.DefaultFileMode)
	if err != nil {
		return fail(err)
	}
	if written {
		outcome.Status = StatusExported
	} else {
		outcome.Status = StatusUnchanged
	}
	return outcome
}

type debugLogger interface {
	Debug(msg any, keyvals ...any)
}

func logOutcome(logger debugLogger, outcome FileOutcome) {
	if outcome.Error != nil {
		logger.Debug("file failed",
			logging.FieldPath, outcome.Path,
			logging.FieldErrorKind, outcome.ErrorKind(),
			logging.FieldError, outcome.Error)
		return
	}
	logger.Debug("file done",
		logging.FieldPath, outcome.Path,
		logging.FieldOutput, outcome.Output,
		logging.FieldDialect, outcome.Dialect,
		logging.FieldParagraphs, outcome.Paragraphs,
		logging.FieldStatus, outcome.Status)
}
