// Package quilltest builds synthetic Quill files for tests.
package quilltest

import (
	"encoding/binary"

	"github.com/yaklabco/qstripper/pkg/charset"
)

// Control codes, re-exported for readable test fixtures.
const (
	Para        byte = 0x00
	Tab         byte = 0x09
	FormFeed    byte = 0x0C
	Bold        byte = 0x0F
	Underline   byte = 0x10
	Subscript   byte = 0x11
	Superscript byte = 0x12
	Italic      byte = 0x13
	SoftHyphen  byte = 0x1E
)

// File describes a Quill file to build.
type File struct {
	Dialect charset.Dialect
	Header  []byte
	Footer  []byte
	Body    []byte

	// Tables are appended after the body; their lengths go in the header.
	ParagraphTable []byte
	FreeSpace      []byte
	LayoutTable    []byte

	// TextLength overrides the computed end-of-text offset when non-zero.
	TextLength uint32

	// Magic overrides the file tag when non-empty.
	Magic string
}

// Build serialises f.
func (f File) Build() []byte {
	order := f.Dialect.ByteOrder()

	buf := make([]byte, 20)
	binary.BigEndian.PutUint16(buf[0:2], blockLength(f.Dialect))

	magic := f.Magic
	if magic == "" {
		magic = "vrm1qdf0"
	}
	copy(buf[2:10], magic)

	buf = append(buf, f.Header...)
	buf = append(buf, 0)
	buf = append(buf, f.Footer...)
	buf = append(buf, 0)
	buf = append(buf, f.Body...)

	textLength := f.TextLength
	if textLength == 0 {
		textLength = uint32(len(buf))
	}
	order.PutUint32(buf[10:14], textLength)
	order.PutUint16(buf[14:16], uint16(len(f.ParagraphTable)))
	order.PutUint16(buf[16:18], uint16(len(f.FreeSpace)))
	order.PutUint16(buf[18:20], uint16(len(f.LayoutTable)))

	buf = append(buf, f.ParagraphTable...)
	buf = append(buf, f.FreeSpace...)
	buf = append(buf, f.LayoutTable...)

	return buf
}

// QL builds a QL-dialect file with the given page header, footer and body.
func QL(header, footer string, body ...byte) []byte {
	return File{Dialect: charset.QL, Header: []byte(header), Footer: []byte(footer), Body: body}.Build()
}

// PC builds a PC-dialect file with the given page header, footer and body.
func PC(header, footer string, body ...byte) []byte {
	return File{Dialect: charset.PC, Header: []byte(header), Footer: []byte(footer), Body: body}.Build()
}

// Text is shorthand for turning a string into body bytes.
func Text(s string) []byte {
	return []byte(s)
}

// Join concatenates body fragments.
func Join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func blockLength(d charset.Dialect) uint16 {
	if d == charset.PC {
		// 20 stored little-endian, as PC Quill writes it.
		return 0x1400
	}
	return 20
}
