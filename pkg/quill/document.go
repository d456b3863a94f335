package quill

import (
	"bytes"
	"strings"

	"github.com/yaklabco/qstripper/pkg/charset"
)

// Style holds the five character attributes Quill can toggle.
// Subscript and Superscript may both be set; renderers pick one.
type Style struct {
	Bold        bool `json:"bold,omitempty"`
	Italic      bool `json:"italic,omitempty"`
	Underline   bool `json:"underline,omitempty"`
	Subscript   bool `json:"subscript,omitempty"`
	Superscript bool `json:"superscript,omitempty"`
}

// IsPlain reports whether no attribute is set.
func (s Style) IsPlain() bool {
	return s == Style{}
}

// String lists the set attributes, e.g. "bold+underline", or "plain".
func (s Style) String() string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underline {
		parts = append(parts, "underline")
	}
	if s.Subscript {
		parts = append(parts, "subscript")
	}
	if s.Superscript {
		parts = append(parts, "superscript")
	}
	if len(parts) == 0 {
		return "plain"
	}
	return strings.Join(parts, "+")
}

// Run is a maximal span of text sharing one Style.
// Tabs are kept in Text as U+0009.
type Run struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// Segment is a piece of a run: either literal text or a single tab.
type Segment struct {
	Text string
	Tab  bool
}

// HasTab reports whether the run contains a tab.
func (r Run) HasTab() bool {
	return strings.IndexByte(r.Text, '\t') >= 0
}

// Segments splits the run into text and tab segments, in order.
func (r Run) Segments() []Segment {
	var segs []Segment
	rest := r.Text
	for rest != "" {
		idx := strings.IndexByte(rest, '\t')
		if idx < 0 {
			segs = append(segs, Segment{Text: rest})
			break
		}
		if idx > 0 {
			segs = append(segs, Segment{Text: rest[:idx]})
		}
		segs = append(segs, Segment{Text: "\t", Tab: true})
		rest = rest[idx+1:]
	}
	return segs
}

// Paragraph is an ordered sequence of runs.
type Paragraph struct {
	runs []Run
}

// Runs returns the paragraph's runs. The slice must not be modified.
func (p Paragraph) Runs() []Run {
	return p.runs
}

// Text returns the concatenated text of all runs.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// IsEmpty reports whether the paragraph has no text.
func (p Paragraph) IsEmpty() bool {
	return len(p.runs) == 0
}

// NewParagraph builds a paragraph from runs. Empty runs are dropped.
func NewParagraph(runs ...Run) Paragraph {
	p := Paragraph{}
	for _, r := range runs {
		if r.Text != "" {
			p.runs = append(p.runs, r)
		}
	}
	return p
}

// Document is a decoded Quill file. It is immutable once returned by Decode.
type Document struct {
	raw        []byte
	header     Header
	pageHeader string
	pageFooter string
	paragraphs []Paragraph
	bodyStart  int
	italic     bool
	tables     Tables
}

// Header returns the page header text.
func (d *Document) Header() string {
	return d.pageHeader
}

// Footer returns the page footer text.
func (d *Document) Footer() string {
	return d.pageFooter
}

// Paragraphs returns the body paragraphs. The slice must not be modified.
func (d *Document) Paragraphs() []Paragraph {
	return d.paragraphs
}

// RawBytes returns a copy of the original file contents.
func (d *Document) RawBytes() []byte {
	return bytes.Clone(d.raw)
}

// Size returns the length of the original file in bytes.
func (d *Document) Size() int {
	return len(d.raw)
}

// FileHeader returns the parsed fixed header.
func (d *Document) FileHeader() Header {
	return d.header
}

// Dialect returns the dialect the file was decoded as.
func (d *Document) Dialect() charset.Dialect {
	return d.header.Dialect
}

// BodyOffset returns the file offset of the first body byte.
func (d *Document) BodyOffset() int {
	return d.bodyStart
}

// ItalicEnabled reports whether byte 0x13 was decoded as the italic toggle.
func (d *Document) ItalicEnabled() bool {
	return d.italic
}

// Tables returns the best-effort trailing table metadata.
func (d *Document) Tables() Tables {
	return d.tables
}

// Text returns the body as plain text, one line per paragraph.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, p := range d.paragraphs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Text())
	}
	return sb.String()
}
