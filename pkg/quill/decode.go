// Package quill decodes documents written by the QL Quill word processor.
//
// A Quill file is a 20-byte header, the page header and footer as zero-terminated
// strings, a body of text with in-band control codes, and three trailing tables.
// Decode turns the whole file into a Document of paragraphs and styled runs.
//
// Style toggles are not nested: a paragraph break switches every attribute off,
// whether or not the toggles before it were paired. Real Quill files rely on this.
package quill

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/qstripper/pkg/charset"
	"github.com/yaklabco/qstripper/pkg/fsutil"
)

// Control codes embedded in the body text.
const (
	codeParagraph   = 0x00
	codeTab         = 0x09
	codeFormFeed    = 0x0C
	codeBold        = 0x0F
	codeUnderline   = 0x10
	codeSubscript   = 0x11
	codeSuperscript = 0x12
	codeItalic      = 0x13
	codeSoftHyphen  = 0x1E
)

// Decode parses a complete Quill file held in data.
// data is copied; the caller may reuse it afterwards.
func Decode(data []byte, opts ...Option) (*Document, error) {
	cfg := newDecodeConfig(opts)
	raw := bytes.Clone(data)

	hdr, err := ParseHeader(raw)
	if err != nil {
		return nil, err
	}

	textEnd := int(hdr.TextLength)
	cur := newCursor(raw, hdr.Dialect.ByteOrder())
	cur.pos = HeaderSize

	pageHeader, err := readPageString(cur, textEnd)
	if err != nil {
		return nil, err
	}
	pageFooter, err := readPageString(cur, textEnd)
	if err != nil {
		return nil, err
	}

	if textEnd > len(raw) {
		return nil, truncatedAt(len(raw), textEnd, len(raw))
	}

	doc := &Document{
		raw:        raw,
		header:     hdr,
		pageHeader: charset.TranslateBytes(pageHeader, hdr.Dialect),
		pageFooter: charset.TranslateBytes(pageFooter, hdr.Dialect),
		bodyStart:  cur.pos,
		italic:     cfg.italicFor(hdr.Dialect),
		tables:     locateTables(hdr, len(raw)),
	}

	builder := newBodyBuilder(hdr.Dialect, doc.italic)
	for _, b := range raw[cur.pos:textEnd] {
		builder.feed(b)
	}
	doc.paragraphs = builder.finish()

	return doc, nil
}

// DecodeFile reads path fully into memory and decodes it.
func DecodeFile(ctx context.Context, path string, opts ...Option) (*Document, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(content, opts...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

func readPageString(cur *cursor, textEnd int) ([]byte, error) {
	start := cur.pos
	span, found, err := cur.until(textEnd)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &DecodeError{
			Err:    ErrUnterminatedHeaderOrFooter,
			Offset: start,
			Actual: fmt.Sprintf("no zero byte before text end at offset %d", textEnd),
		}
	}
	return span, nil
}

// bodyBuilder is the control-code state machine. It holds the toggle state for a
// single decode and is never shared.
type bodyBuilder struct {
	dialect    charset.Dialect
	italic     bool
	style      Style
	text       strings.Builder
	runs       []Run
	paragraphs []Paragraph
}

func newBodyBuilder(dialect charset.Dialect, italic bool) *bodyBuilder {
	return &bodyBuilder{dialect: dialect, italic: italic}
}

func (b *bodyBuilder) feed(c byte) {
	switch c {
	case codeParagraph:
		b.breakParagraph()
	case codeBold:
		b.toggle(func(s *Style) { s.Bold = !s.Bold })
	case codeUnderline:
		b.toggle(func(s *Style) { s.Underline = !s.Underline })
	case codeSubscript:
		b.toggle(func(s *Style) { s.Subscript = !s.Subscript })
	case codeSuperscript:
		b.toggle(func(s *Style) { s.Superscript = !s.Superscript })
	case codeItalic:
		if !b.italic {
			b.text.WriteRune(charset.Translate(c, b.dialect))
			return
		}
		b.toggle(func(s *Style) { s.Italic = !s.Italic })
	case codeFormFeed, codeSoftHyphen:
		// Layout hints with no textual content.
	case codeTab:
		// Content, kept inside the current run without splitting it.
		b.text.WriteRune(charset.Translate(c, b.dialect))
	default:
		b.text.WriteRune(charset.Translate(c, b.dialect))
	}
}

func (b *bodyBuilder) flushRun() {
	if b.text.Len() == 0 {
		return
	}
	b.runs = append(b.runs, Run{Text: b.text.String(), Style: b.style})
	b.text.Reset()
}

func (b *bodyBuilder) toggle(flip func(*Style)) {
	b.flushRun()
	flip(&b.style)
}

func (b *bodyBuilder) breakParagraph() {
	b.flushRun()
	b.paragraphs = append(b.paragraphs, Paragraph{runs: b.runs})
	b.runs = nil
	b.style = Style{}
}

// finish closes the last paragraph. A paragraph opened by a final break that never
// received text is dropped; no style reset is implied by end of text.
func (b *bodyBuilder) finish() []Paragraph {
	b.flushRun()
	if len(b.runs) > 0 {
		b.paragraphs = append(b.paragraphs, Paragraph{runs: b.runs})
		b.runs = nil
	}
	return b.paragraphs
}
