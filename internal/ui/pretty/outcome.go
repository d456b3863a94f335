package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/qstripper/pkg/quill"
	"github.com/yaklabco/qstripper/pkg/runner"
)

// FormatStatus returns a styled status word.
func (s *Styles) FormatStatus(status runner.Status) string {
	switch status {
	case runner.StatusExported:
		return s.Exported.Render(string(status))
	case runner.StatusUnchanged:
		return s.Unchanged.Render(string(status))
	case runner.StatusSkipped:
		return s.Skipped.Render(string(status))
	case runner.StatusDryRun:
		return s.DryRun.Render(string(status))
	case runner.StatusFailed:
		return s.Error.Render(string(status))
	default:
		return string(status)
	}
}

// FormatOutcome formats one file's result on a single line. path and output
// are passed in so the caller can make them relative.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, path, output string) string {
	if outcome.Error != nil {
		return fmt.Sprintf("  %s  %s  %s  %s\n",
			s.FilePath.Render(path),
			s.FormatStatus(outcome.Status),
			s.Message.Render(outcome.Error.Error()),
			s.Kind.Render("("+outcome.ErrorKind()+")"),
		)
	}

	detail := fmt.Sprintf("(%s, %d %s)", outcome.Dialect,
		outcome.Paragraphs, plural(outcome.Paragraphs, "paragraph", "paragraphs"))
	return fmt.Sprintf("  %s  %s  %s %s\n",
		s.FilePath.Render(path),
		s.FormatStatus(outcome.Status),
		s.Dim.Render("-> ")+output,
		s.Dim.Render(detail),
	)
}

// FormatFinding formats a toggle lint finding as path:offset.
func (s *Styles) FormatFinding(path string, finding quill.Finding) string {
	location := fmt.Sprintf("%s:%s",
		s.FilePath.Render(path),
		s.Location.Render(fmt.Sprintf("0x%04x", finding.Offset)),
	)
	return fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Warning.Render("warning"),
		s.Message.Render(finding.Message()),
		s.Kind.Render("("+string(finding.Kind)+")"),
	)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "finding", "findings")))
	}
	return header
}

// FormatError formats an error line for path.
func (s *Styles) FormatError(path string, err error) string {
	var b strings.Builder
	b.WriteString(s.FilePath.Render(path))
	b.WriteString(": ")
	b.WriteString(s.Error.Render("error: " + err.Error()))
	if kind := quill.ErrorKind(err); kind != "" {
		b.WriteString(" " + s.Kind.Render("("+kind+")"))
	}
	b.WriteString("\n")
	return b.String()
}
