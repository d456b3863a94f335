package cli

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/qstripper/internal/logging"
	"github.com/yaklabco/qstripper/internal/ui/pretty"
	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/fsutil"
	"github.com/yaklabco/qstripper/pkg/quill"
	"github.com/yaklabco/qstripper/pkg/runner"
)

type inspectFlags struct {
	json   bool
	italic string
}

// inspectReport is the structural description of one file.
type inspectReport struct {
	Path        string          `json:"path"`
	Size        int             `json:"size"`
	Compression string          `json:"compression,omitempty"`
	SHA256      string          `json:"sha256,omitempty"`
	Header      *quill.Header   `json:"header,omitempty"`
	PageHeader  string          `json:"pageHeader,omitempty"`
	PageFooter  string          `json:"pageFooter,omitempty"`
	BodyOffset  int             `json:"bodyOffset,omitempty"`
	Paragraphs  int             `json:"paragraphs"`
	Italic      bool            `json:"italic"`
	Tables      *quill.Tables   `json:"tables,omitempty"`
	Findings    []quill.Finding `json:"findings,omitempty"`
	Error       string          `json:"error,omitempty"`
	ErrorKind   string          `json:"errorKind,omitempty"`

	err error
}

func newInspectCommand() *cobra.Command {
	var cfg config.Config
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Show the structure of Quill documents",
		Long: `Show the fixed header fields, detected dialect, page header and footer,
body offset and the extents of the trailing tables of each file.

With --strict, bold, underline, italic, subscript and superscript toggles are
replayed with strict nesting and every toggle closed out of order or left open
at a paragraph break is listed. These findings never change how a document
decodes.

Examples:
  qstripper inspect memo_doc
  qstripper inspect --strict LETTER.DOC
  qstripper inspect --json *_doc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "list toggle nesting findings")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print JSON instead of tables")
	cmd.Flags().StringVar(&flags.italic, "italic", "", "decode 0x13 as italic: auto, on, off")

	return cmd
}

func runInspect(cmd *cobra.Command, paths []string, cliCfg *config.Config, flags *inspectFlags) (err error) {
	if flags.italic != "" && !config.ItalicMode(flags.italic).IsValid() {
		return usageError(fmt.Errorf("invalid --italic %q: must be auto, on or off", flags.italic))
	}
	cliCfg.Decode.Italic = config.ItalicMode(flags.italic)

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	opts := runner.DecodeOptions(loaded.cfg)

	reports := make([]inspectReport, 0, len(paths))
	failed := 0
	for _, path := range paths {
		report := inspectFile(ctx, path, loaded.cfg.Strict, opts)
		if report.err != nil {
			failed++
			logging.Default().Debug("inspect failed",
				logging.FieldPath, path,
				logging.FieldError, report.err,
				logging.FieldErrorKind, report.ErrorKind,
			)
		}
		reports = append(reports, report)
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if flushErr := out.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	if flags.json {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(reports); err != nil {
			return fmt.Errorf("encode inspect report: %w", err)
		}
	} else {
		styles := pretty.NewStyles(pretty.IsColorEnabled(loaded.color, cmd.OutOrStdout()))
		for i, report := range reports {
			if i > 0 {
				if _, err := io.WriteString(out, "\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(out, formatInspectReport(styles, report)); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return ErrFilesFailed
	}
	return nil
}

// inspectFile gathers what can be learned about path. Decode errors leave the
// parsed header in place when the header itself was readable.
func inspectFile(ctx context.Context, path string, strict bool, opts []quill.Option) inspectReport {
	report := inspectReport{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		report.fail(err)
		return report
	}
	report.Size = len(content)
	report.Compression = string(info.Compression)
	report.SHA256 = hex.EncodeToString(info.Hash[:])

	hdr, err := quill.ParseHeader(content)
	if err != nil {
		if !quill.IsQuill(content) {
			err = fmt.Errorf("not a Quill document: %w", err)
		}
		report.fail(err)
		return report
	}
	report.Header = &hdr

	doc, err := quill.Decode(content, opts...)
	if err != nil {
		report.fail(err)
		return report
	}

	tables := doc.Tables()
	report.PageHeader = doc.Header()
	report.PageFooter = doc.Footer()
	report.BodyOffset = doc.BodyOffset()
	report.Paragraphs = len(doc.Paragraphs())
	report.Italic = doc.ItalicEnabled()
	report.Tables = &tables
	if strict {
		report.Findings = quill.LintDocument(doc)
	}
	return report
}

func (r *inspectReport) fail(err error) {
	r.err = err
	r.Error = err.Error()
	r.ErrorKind = quill.ErrorKind(err)
}

func formatInspectReport(styles *pretty.Styles, report inspectReport) string {
	var b strings.Builder

	b.WriteString(styles.FormatFileHeader(report.Path, len(report.Findings)))
	b.WriteString("\n")

	if report.Header != nil {
		b.WriteString(styles.FormatTable([]string{"FIELD", "OFFSET", "VALUE"}, inspectRows(report)))
	}
	for _, finding := range report.Findings {
		b.WriteString(styles.FormatFinding(report.Path, finding))
	}
	if report.err != nil {
		b.WriteString(styles.FormatError(report.Path, report.err))
	}
	return b.String()
}

func inspectRows(report inspectReport) [][]string {
	hdr := report.Header
	rows := [][]string{
		{"dialect", "", hdr.Dialect.String()},
		{"block length", offset(0), strconv.Itoa(int(hdr.BlockLength))},
		{"magic", offset(2), hdr.Magic},
		{"text length", offset(10), strconv.FormatUint(uint64(hdr.TextLength), 10)},
		{"paragraph table length", offset(14), strconv.Itoa(int(hdr.ParagraphTableLength))},
		{"free space length", offset(16), strconv.Itoa(int(hdr.FreeSpaceLength))},
		{"layout table length", offset(18), strconv.Itoa(int(hdr.LayoutTableLength))},
	}
	if report.Compression != "" {
		rows = append(rows, []string{"compression", "", report.Compression})
	}
	rows = append(rows, []string{"sha256", "", report.SHA256})
	if report.Tables == nil {
		return rows
	}

	rows = append(rows,
		[]string{"page header", offset(quill.HeaderSize), strconv.Quote(report.PageHeader)},
		[]string{"page footer", "", strconv.Quote(report.PageFooter)},
		[]string{"body", offset(report.BodyOffset), plural(report.Paragraphs, "paragraph")},
		[]string{"italic", "", onOff(report.Italic)},
		[]string{"paragraph table", offset(report.Tables.Paragraph.Offset), span(report.Tables.Paragraph)},
		[]string{"free space table", offset(report.Tables.FreeSpace.Offset), span(report.Tables.FreeSpace)},
		[]string{"layout table", offset(report.Tables.Layout.Offset), span(report.Tables.Layout)},
		[]string{"trailing", "", plural(report.Tables.Trailing, "byte")},
	)
	for _, warning := range report.Tables.Warnings {
		rows = append(rows, []string{"warning", "", warning})
	}
	return rows
}

func offset(n int) string {
	return fmt.Sprintf("0x%04x", n)
}

func span(s quill.TableSpan) string {
	value := plural(s.Length, "byte")
	if !s.Complete {
		value += " (incomplete)"
	}
	return value
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
