package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/quill"
)

// JSON writes the decoded document model. It is a view for other tools, not a
// format that can be turned back into a Quill file.
type JSON struct {
	opts Options
}

// NewJSON creates a JSON writer.
func NewJSON(opts Options) *JSON {
	return &JSON{opts: opts}
}

func (j *JSON) Name() string      { return string(config.ExportJSON) }
func (j *JSON) Extension() string { return "json" }

// DocumentView is the JSON shape of a document.
type DocumentView struct {
	Dialect    string          `json:"dialect"`
	Italic     bool            `json:"italic"`
	File       quill.Header    `json:"file"`
	Header     string          `json:"header"`
	Footer     string          `json:"footer"`
	Paragraphs []ParagraphView `json:"paragraphs"`
	Tables     quill.Tables    `json:"tables"`
}

// ParagraphView is the JSON shape of a paragraph.
type ParagraphView struct {
	Text string      `json:"text"`
	Runs []quill.Run `json:"runs"`
}

// View converts doc to its JSON shape.
func View(doc *quill.Document) DocumentView {
	view := DocumentView{
		Dialect:    doc.Dialect().String(),
		Italic:     doc.ItalicEnabled(),
		File:       doc.FileHeader(),
		Header:     doc.Header(),
		Footer:     doc.Footer(),
		Paragraphs: make([]ParagraphView, 0, len(doc.Paragraphs())),
		Tables:     doc.Tables(),
	}
	for _, p := range doc.Paragraphs() {
		runs := p.Runs()
		if runs == nil {
			runs = []quill.Run{}
		}
		view.Paragraphs = append(view.Paragraphs, ParagraphView{Text: p.Text(), Runs: runs})
	}
	return view
}

// Write implements Writer.
func (j *JSON) Write(w io.Writer, doc *quill.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(View(doc)); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
