package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/qstripper/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 exported, 1 skipped, 1 failed (5 files, 42 paragraphs)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Quill documents found") + "\n"
	}

	var parts []string
	if stats.FilesExported > 0 {
		parts = append(parts, s.Exported.Render(fmt.Sprintf("%d exported", stats.FilesExported)))
	}
	if stats.FilesDryRun > 0 {
		parts = append(parts, s.DryRun.Render(fmt.Sprintf("%d decoded (dry run)", stats.FilesDryRun)))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Unchanged.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	detail := s.Dim.Render(fmt.Sprintf(" (%d %s, %d %s)",
		stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles),
		stats.Paragraphs, plural(stats.Paragraphs, "paragraph", "paragraphs")))

	return strings.Join(parts, ", ") + detail + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	line := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(value)) + "\n")
	}

	line("Files found", stats.FilesDiscovered, s.SummaryValue.Render)
	if stats.FilesExported > 0 {
		line("Exported", stats.FilesExported, s.Exported.Render)
	}
	if stats.FilesDryRun > 0 {
		line("Decoded (dry run)", stats.FilesDryRun, s.DryRun.Render)
	}
	if stats.FilesUnchanged > 0 {
		line("Unchanged", stats.FilesUnchanged, s.Unchanged.Render)
	}
	if stats.FilesSkipped > 0 {
		line("Skipped (exists)", stats.FilesSkipped, s.Skipped.Render)
	}
	if stats.FilesFailed > 0 {
		line("Failed", stats.FilesFailed, s.Error.Render)
		kinds := make([]string, 0, len(stats.ErrorsByKind))
		for kind := range stats.ErrorsByKind {
			kinds = append(kinds, kind)
		}
		slices.Sort(kinds)
		for _, kind := range kinds {
			line("  "+kind, stats.ErrorsByKind[kind], s.Kind.Render)
		}
	}
	line("Paragraphs", stats.Paragraphs, s.SummaryValue.Render)

	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Export finished with failures"))
	case stats.FilesDiscovered == 0:
		builder.WriteString(s.Dim.Render("Nothing to export"))
	default:
		builder.WriteString(s.Success.Render("Export complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
