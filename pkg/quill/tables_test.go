package quill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qstripper/pkg/charset"
	"github.com/yaklabco/qstripper/pkg/quill"
	qt "github.com/yaklabco/qstripper/pkg/quill/quilltest"
)

func TestTables_Complete(t *testing.T) {
	t.Parallel()

	data := qt.File{
		Dialect:        charset.QL,
		Body:           qt.Text("abc"),
		ParagraphTable: make([]byte, 6),
		FreeSpace:      make([]byte, 4),
		LayoutTable:    make([]byte, 8),
	}.Build()
	data = append(data, 0xAA, 0xBB)

	doc, err := quill.Decode(data)
	require.NoError(t, err)

	tables := doc.Tables()
	textEnd := int(doc.FileHeader().TextLength)

	assert.Equal(t, quill.TableSpan{Offset: textEnd, Length: 6, Complete: true}, tables.Paragraph)
	assert.Equal(t, quill.TableSpan{Offset: textEnd + 6, Length: 4, Complete: true}, tables.FreeSpace)
	assert.Equal(t, quill.TableSpan{Offset: textEnd + 10, Length: 8, Complete: true}, tables.Layout)
	assert.Equal(t, textEnd+18, tables.Layout.End())
	assert.Equal(t, 2, tables.Trailing)
	assert.Empty(t, tables.Warnings)
}

func TestTables_ShortFileWarnsButDecodes(t *testing.T) {
	t.Parallel()

	data := qt.File{
		Dialect:        charset.QL,
		Body:           qt.Text("abc"),
		ParagraphTable: make([]byte, 6),
		LayoutTable:    make([]byte, 8),
	}.Build()
	data = data[:len(data)-3]

	doc, err := quill.Decode(data)
	require.NoError(t, err, "table damage never fails a decode")
	assert.Equal(t, "abc", doc.Paragraphs()[0].Text())

	tables := doc.Tables()
	assert.True(t, tables.Paragraph.Complete)
	assert.True(t, tables.FreeSpace.Complete)
	assert.False(t, tables.Layout.Complete)
	require.Len(t, tables.Warnings, 1)
	assert.Contains(t, tables.Warnings[0], "layout table")
	assert.Zero(t, tables.Trailing)
}
