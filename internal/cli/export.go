package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/qstripper/internal/logging"
	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/reporter"
	"github.com/yaklabco/qstripper/pkg/runner"
)

// exportFlags holds flag values that need checking before they reach the config.
type exportFlags struct {
	to           string
	tabs         string
	italic       string
	report       string
	wrap         int
	noPageHeader bool
	quiet        bool
	compact      bool
}

func newExportCommand() *cobra.Command {
	var cfg config.Config
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Convert Quill documents to text, Markdown or JSON",
		Long: `Convert Quill documents to text, Markdown or JSON.

Directories are searched recursively for QL names ending in _doc and PC names
ending in .doc; gzip and zstd compressed copies are read transparently. Files
named explicitly are converted whatever their name.

The output sits next to each source unless --out is given. QL names swap their
_doc suffix for the writer's (letter_doc becomes letter_txt), PC names swap the
extension. Existing outputs are left alone unless --overwrite is set.

Examples:
  qstripper export                        Convert every document under .
  qstripper export letters/ --to markdown Write Markdown next to each document
  qstripper export memo_doc --out build   Write build/memo_txt
  qstripper export --dry-run --report json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.to, "to", "", "output format: text, markdown, json (default text)")
	cmd.Flags().StringVarP(&cfg.Export.OutputDir, "out", "o", "", "directory for converted files (default: beside each source)")
	cmd.Flags().IntVar(&flags.wrap, "wrap", config.DefaultWrap, "wrap text output at this column, 0 to disable")
	cmd.Flags().StringVar(&flags.tabs, "tabs", "", "tab handling for text output: tab, spaces")
	cmd.Flags().IntVar(&cfg.Text.TabWidth, "tab-width", 0, "tab stop width when expanding tabs (default 8)")
	cmd.Flags().StringVar(&flags.italic, "italic", "", "decode 0x13 as italic: auto, on, off")
	cmd.Flags().BoolVar(&cfg.Export.Overwrite, "overwrite", false, "replace existing output files")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "decode and report without writing files")
	cmd.Flags().BoolVar(&cfg.Backups.Enabled, "backups", false, "keep a .bak copy of outputs before overwriting")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (default: number of CPUs)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().StringVar(&flags.report, "report", "", "report format: text, json, summary")
	cmd.Flags().BoolVar(&cfg.Diff, "diff", false, "show how each export differs from the file it would replace")
	cmd.Flags().BoolVar(&flags.noPageHeader, "no-page-header", false, "omit the page header and footer from the output")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "only report exported and failed files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON report output")

	return cmd
}

// validate checks enumerated flag values so that bad input is a usage error
// rather than a configuration error.
func (f *exportFlags) validate(cmd *cobra.Command, cliCfg *config.Config) error {
	switch {
	case f.to != "" && !config.ExportFormat(f.to).IsValid():
		return fmt.Errorf("invalid --to %q: must be text, markdown or json", f.to)
	case f.tabs != "" && !config.TabMode(f.tabs).IsValid():
		return fmt.Errorf("invalid --tabs %q: must be tab or spaces", f.tabs)
	case f.italic != "" && !config.ItalicMode(f.italic).IsValid():
		return fmt.Errorf("invalid --italic %q: must be auto, on or off", f.italic)
	case f.report != "" && !config.ReportFormat(f.report).IsValid():
		return fmt.Errorf("invalid --report %q: must be text, json or summary", f.report)
	case cmd.Flags().Changed("wrap") && f.wrap != 0 && f.wrap < 8:
		return fmt.Errorf("invalid --wrap %d: must be 0 or at least 8", f.wrap)
	case cmd.Flags().Changed("tab-width") && cliCfg.Text.TabWidth < 1:
		return fmt.Errorf("invalid --tab-width %d: must be at least 1", cliCfg.Text.TabWidth)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *exportFlags) error {
	if err := flags.validate(cmd, cliCfg); err != nil {
		return usageError(err)
	}

	cliCfg.Export.To = config.ExportFormat(flags.to)
	cliCfg.Text.Tabs = config.TabMode(flags.tabs)
	cliCfg.Decode.Italic = config.ItalicMode(flags.italic)
	cliCfg.Report = config.ReportFormat(flags.report)

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.cfg

	// Flags that switch something off cannot pass through the merge.
	if cmd.Flags().Changed("wrap") {
		cfg.Text.Wrap = flags.wrap
	}
	if flags.noPageHeader {
		cfg.Text.PageHeader = false
	}

	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	r, err := runner.NewFromConfig(cfg)
	if err != nil {
		return usageError(err)
	}

	runOpts := runner.OptionsFromConfig(cfg, args...)
	runOpts.WorkingDir = loaded.workingDir

	logger.Debug("starting export",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldFormat, cfg.Export.To,
		logging.FieldOutputDir, cfg.Export.OutputDir,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldOverwrite, cfg.Export.Overwrite,
		logging.FieldJobs, cfg.Jobs,
	)

	result, err := r.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	format, err := reporter.ParseFormat(string(cfg.Report))
	if err != nil {
		return usageError(err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       loaded.color,
		ShowSummary: true,
		Quiet:       flags.quiet,
		Compact:     flags.compact,
		WorkingDir:  loaded.workingDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	logger.Debug("export finished",
		logging.FieldRunID, result.RunID,
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesExported, result.Stats.FilesExported,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDuration, result.Stats.Duration,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}
