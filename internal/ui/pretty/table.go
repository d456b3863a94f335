package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tablePadding   = 2
	lightSeparator = "-"
)

// FormatTable lays out rows under headers in aligned columns. Cells are
// measured in display columns so styled or wide text stays aligned.
func (s *Styles) FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}

	var b strings.Builder
	b.WriteString(s.TableHeader.Render(formatRow(headers, widths)))
	b.WriteString("\n")
	b.WriteString(s.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(formatRow(row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)+tablePadding))
		}
	}
	return b.String()
}
