package quill_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/qstripper/pkg/quill"
	qt "github.com/yaklabco/qstripper/pkg/quill/quilltest"
)

// benchmarkBody builds a body of n styled paragraphs.
func benchmarkBody(n int) []byte {
	para := qt.Join(
		qt.Text("The quick brown fox "),
		[]byte{qt.Bold}, qt.Text("jumps"), []byte{qt.Bold},
		qt.Text(" over the "),
		[]byte{qt.Underline}, qt.Text("lazy"), []byte{qt.Underline},
		qt.Text(" dog. H"),
		[]byte{qt.Subscript}, qt.Text("2"), []byte{qt.Subscript},
		qt.Text("O costs 5 "), []byte{0x60}, []byte{qt.Tab}, qt.Text("each."),
		[]byte{qt.Para},
	)
	return bytes.Repeat(para, n)
}

func BenchmarkDecode_QL(b *testing.B) {
	data := qt.QL("Quarterly report", "Page 1", benchmarkBody(500)...)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for range b.N {
		doc, err := quill.Decode(data)
		if err != nil || doc == nil {
			b.Fail()
		}
	}
}

func BenchmarkDecode_PC(b *testing.B) {
	data := qt.PC("Quarterly report", "Page 1", benchmarkBody(500)...)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for range b.N {
		doc, err := quill.Decode(data)
		if err != nil || doc == nil {
			b.Fail()
		}
	}
}

func BenchmarkLint(b *testing.B) {
	data := qt.QL("", "", benchmarkBody(500)...)

	b.ResetTimer()
	for range b.N {
		if _, err := quill.Lint(data); err != nil {
			b.Fail()
		}
	}
}
