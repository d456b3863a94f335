package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/quill"
)

// Text writes plain text: styling is dropped, each paragraph becomes one or more
// lines, and the page header and footer frame the body.
type Text struct {
	opts Options
}

// NewText creates a text writer.
func NewText(opts Options) *Text {
	return &Text{opts: opts}
}

func (t *Text) Name() string      { return string(config.ExportText) }
func (t *Text) Extension() string { return "txt" }

// Write implements Writer.
func (t *Text) Write(w io.Writer, doc *quill.Document) error {
	bw := bufio.NewWriter(w)
	wr := wrapper{
		width:    t.opts.Wrap,
		tabWidth: t.opts.tabWidth(),
		expand:   t.opts.Tabs == config.TabsSpaces,
	}

	writeBlock := func(s string) {
		for _, line := range wr.lines(s) {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}

	if t.opts.PageHeader && doc.Header() != "" {
		writeBlock(doc.Header())
		bw.WriteByte('\n')
	}

	for _, p := range doc.Paragraphs() {
		writeBlock(p.Text())
	}

	if t.opts.PageHeader && doc.Footer() != "" {
		bw.WriteByte('\n')
		writeBlock(doc.Footer())
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
