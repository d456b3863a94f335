package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/quill"
)

// Markdown writes CommonMark. Bold and italic use emphasis markers; underline,
// subscript and superscript use inline HTML. The page header and footer become
// HTML comments. Empty paragraphs are dropped.
//
// Each paragraph is parsed back with goldmark; when emphasis markers would not
// survive (e.g. next to punctuation) the paragraph is re-rendered with
// <strong> and <em> instead.
type Markdown struct {
	opts Options
}

// NewMarkdown creates a markdown writer.
func NewMarkdown(opts Options) *Markdown {
	return &Markdown{opts: opts}
}

func (m *Markdown) Name() string      { return string(config.ExportMarkdown) }
func (m *Markdown) Extension() string { return "md" }

// Write implements Writer.
func (m *Markdown) Write(w io.Writer, doc *quill.Document) error {
	bw := bufio.NewWriter(w)
	first := true
	block := func(s string) {
		if !first {
			bw.WriteByte('\n')
		}
		first = false
		bw.WriteString(s)
		bw.WriteByte('\n')
	}

	if m.opts.PageHeader && doc.Header() != "" {
		block(htmlComment("header", doc.Header()))
	}

	for _, p := range doc.Paragraphs() {
		if p.IsEmpty() {
			continue
		}
		block(MarkdownParagraph(p))
	}

	if m.opts.PageHeader && doc.Footer() != "" {
		block(htmlComment("footer", doc.Footer()))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// MarkdownParagraph renders one paragraph, falling back to HTML emphasis tags
// when the marker form does not parse as intended.
func MarkdownParagraph(p quill.Paragraph) string {
	src, want := renderParagraph(p, markerEmphasis)
	if err := ValidateMarkdown([]byte(src), want); err == nil {
		return src
	}
	src, _ = renderParagraph(p, htmlEmphasis)
	return src
}

type emphasisStyle int

const (
	markerEmphasis emphasisStyle = iota
	htmlEmphasis
)

func renderParagraph(p quill.Paragraph, style emphasisStyle) (string, EmphasisCount) {
	var (
		sb   strings.Builder
		want EmphasisCount
	)

	for _, run := range p.Runs() {
		text := run.Text
		if sb.Len() == 0 {
			// Leading indentation would start a code block.
			text = strings.TrimLeft(text, " \t")
		}
		if text == "" {
			continue
		}
		text = escapeMarkdown(text, sb.Len() == 0)

		// Whitespace stays outside the markers so they remain flanking.
		core := strings.TrimLeft(text, " ")
		lead := text[:len(text)-len(core)]
		trimmed := strings.TrimRight(core, " ")
		trail := core[len(trimmed):]
		core = trimmed

		sb.WriteString(lead)
		if core != "" {
			sb.WriteString(styled(core, run.Style, style, &want))
		}
		sb.WriteString(trail)
	}

	return sb.String(), want
}

func styled(text string, s quill.Style, style emphasisStyle, want *EmphasisCount) string {
	if s.Bold {
		want.Strong++
		if style == htmlEmphasis {
			text = "<strong>" + text + "</strong>"
		} else {
			text = "**" + text + "**"
		}
	}
	if s.Italic {
		want.Emphasis++
		if style == htmlEmphasis {
			text = "<em>" + text + "</em>"
		} else {
			text = "*" + text + "*"
		}
	}
	if s.Underline {
		text = "<u>" + text + "</u>"
	}
	if s.Subscript {
		text = "<sub>" + text + "</sub>"
	}
	if s.Superscript {
		text = "<sup>" + text + "</sup>"
	}
	return text
}

// markdownSpecial are characters escaped wherever they appear.
const markdownSpecial = "\\`*_[]<>|~&"

// escapeMarkdown backslash-escapes inline syntax and, at the start of a
// paragraph, anything that would begin a block construct. Tabs become spaces.
func escapeMarkdown(s string, atStart bool) string {
	var sb strings.Builder
	s = strings.ReplaceAll(s, "\t", " ")

	if atStart {
		s = escapeBlockStart(&sb, s)
	}

	for _, r := range s {
		if strings.ContainsRune(markdownSpecial, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// escapeBlockStart writes the escaped form of a leading block marker to sb and
// returns the rest of s.
func escapeBlockStart(sb *strings.Builder, s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '-', '+', '=', '>':
		sb.WriteByte('\\')
		sb.WriteByte(s[0])
		return s[1:]
	}

	digits := 0
	for digits < len(s) && digits < 9 && unicode.IsDigit(rune(s[digits])) {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		sb.WriteString(s[:digits])
		sb.WriteByte('\\')
		sb.WriteByte(s[digits])
		return s[digits+1:]
	}
	return s
}

func htmlComment(label, s string) string {
	return fmt.Sprintf("<!-- %s: %s -->", label, strings.ReplaceAll(s, "--", "- -"))
}

// ErrEmphasisMismatch is returned by ValidateMarkdown.
var ErrEmphasisMismatch = errors.New("emphasis does not parse as written")
