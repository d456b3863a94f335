package pretty

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/qstripper/pkg/quill"
)

const viewTabWidth = 8

// RenderDocument renders doc for a terminal: runs are styled by their
// attributes, paragraphs are word-wrapped at width (0 disables wrapping) and
// the page header and footer are set apart with rules.
func (s *Styles) RenderDocument(doc *quill.Document, width int) string {
	var b strings.Builder

	rule := s.Dim.Render(strings.Repeat("─", ruleWidth(width)))

	if doc.Header() != "" {
		b.WriteString(s.PageHeader.Render(strings.Map(visibleRune, doc.Header())))
		b.WriteString("\n" + rule + "\n")
	}

	for _, p := range doc.Paragraphs() {
		line := s.RenderParagraph(p)
		if width > 0 {
			line = ansi.Wrap(line, width, "")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if doc.Footer() != "" {
		b.WriteString(rule + "\n")
		b.WriteString(s.PageHeader.Render(strings.Map(visibleRune, doc.Footer())))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderParagraph styles each run of p. Tabs are expanded to the next
// eight-column stop.
func (s *Styles) RenderParagraph(p quill.Paragraph) string {
	var (
		b   strings.Builder
		col int
	)
	for _, run := range p.Runs() {
		var text strings.Builder
		for _, r := range run.Text {
			if r == '\t' {
				pad := viewTabWidth - col%viewTabWidth
				text.WriteString(strings.Repeat(" ", pad))
				col += pad
				continue
			}
			r = visibleRune(r)
			text.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
		b.WriteString(s.runStyle(run.Style).Render(text.String()))
	}
	return b.String()
}

// visibleRune swaps control characters for printable stand-ins so document
// bytes cannot drive the terminal. C0 codes and DEL use the Unicode control
// pictures; tab is left for the caller.
func visibleRune(r rune) rune {
	switch {
	case r == '\t' || !unicode.IsControl(r):
		return r
	case r < 0x20:
		return 0x2400 + r
	case r == 0x7f:
		return '\u2421'
	default:
		return unicode.ReplacementChar
	}
}

func (s *Styles) runStyle(style quill.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if style.Bold {
		st = st.Inherit(s.TextBold)
	}
	if style.Italic {
		st = st.Inherit(s.TextItalic)
	}
	if style.Underline {
		st = st.Inherit(s.TextUnder)
	}
	if style.Subscript || style.Superscript {
		st = st.Inherit(s.TextSubSup)
	}
	return st
}

func ruleWidth(width int) int {
	if width <= 0 || width > defaultRuleWidth {
		return defaultRuleWidth
	}
	return width
}

const defaultRuleWidth = 40
