package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/qstripper/pkg/export"
)

// FormatDiff renders a unified diff with path in the headers, colouring added
// and removed lines.
func (s *Styles) FormatDiff(diff *export.Diff, path string) string {
	if diff == nil || len(diff.Hunks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.DiffHeader.Render("--- "+path) + "\n")
	b.WriteString(s.DiffHeader.Render("+++ "+path) + "\n")
	for _, h := range diff.Hunks {
		b.WriteString(s.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)))
		b.WriteString("\n")
		for _, line := range h.Lines {
			switch {
			case strings.HasPrefix(line, "+"):
				b.WriteString(s.DiffAdd.Render(line))
			case strings.HasPrefix(line, "-"):
				b.WriteString(s.DiffRemove.Render(line))
			default:
				b.WriteString(s.DiffContext.Render(line))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
