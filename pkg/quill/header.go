package quill

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/qstripper/pkg/charset"
)

// File layout constants.
const (
	// Magic is the tag every Quill document carries at offset 2.
	Magic = "vrm1qdf0"

	// HeaderSize is the size of the fixed file header; the page header text starts here.
	HeaderSize = 20

	// qlBlockLength is the header block length as stored by QL Quill (big-endian 20).
	qlBlockLength = 20

	// pcBlockLength is what the PC header block length reads as when probed big-endian:
	// PC Quill stores 20 little-endian, i.e. bytes 0x14 0x00.
	pcBlockLength = 5120

	magicOffset      = 2
	textLengthOffset = 10
)

// Header is the fixed 20-byte file header.
type Header struct {
	// BlockLength is the header block length as probed: 20 for QL, 5120 for PC.
	BlockLength uint16 `json:"blockLength"`

	// Magic is the 8-byte file tag.
	Magic string `json:"magic"`

	// TextLength is the offset at which the body ends and the paragraph table starts.
	TextLength uint32 `json:"textLength"`

	// Lengths of the three trailing tables.
	ParagraphTableLength uint16 `json:"paragraphTableLength"`
	FreeSpaceLength      uint16 `json:"freeSpaceLength"`
	LayoutTableLength    uint16 `json:"layoutTableLength"`

	// Dialect is derived from BlockLength.
	Dialect charset.Dialect `json:"dialect"`
}

// ParseHeader validates and parses the fixed header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	var hdr Header

	// The block length is always probed big-endian; the value tells us the dialect.
	probe := newCursor(data, binary.BigEndian)
	blockLength, err := probe.uint16()
	if err != nil {
		return hdr, err
	}

	switch blockLength {
	case qlBlockLength:
		hdr.Dialect = charset.QL
	case pcBlockLength:
		hdr.Dialect = charset.PC
	default:
		return hdr, &DecodeError{
			Err:      ErrBadHeaderLength,
			Offset:   0,
			Expected: fmt.Sprintf("%d or %d", qlBlockLength, pcBlockLength),
			Actual:   strconv.Itoa(int(blockLength)),
		}
	}
	hdr.BlockLength = blockLength

	cur := newCursor(data, hdr.Dialect.ByteOrder())
	cur.pos = magicOffset

	magic, err := cur.bytes(len(Magic))
	if err != nil {
		return hdr, err
	}
	if string(magic) != Magic {
		return hdr, &DecodeError{
			Err:      ErrBadMagic,
			Offset:   magicOffset,
			Expected: strconv.Quote(Magic),
			Actual:   strconv.Quote(string(magic)),
		}
	}
	hdr.Magic = Magic

	if hdr.TextLength, err = cur.uint32(); err != nil {
		return hdr, err
	}
	if hdr.ParagraphTableLength, err = cur.uint16(); err != nil {
		return hdr, err
	}
	if hdr.FreeSpaceLength, err = cur.uint16(); err != nil {
		return hdr, err
	}
	if hdr.LayoutTableLength, err = cur.uint16(); err != nil {
		return hdr, err
	}

	return hdr, nil
}

// IsQuill reports whether data starts with a plausible Quill header.
// It checks only the block length and magic.
func IsQuill(data []byte) bool {
	_, err := ParseHeader(data)
	if err == nil {
		return true
	}
	// A file whose header fields are cut off after the magic is still recognisable.
	var derr *DecodeError
	return errors.As(err, &derr) && errors.Is(derr, ErrTruncatedFile) && derr.Offset >= textLengthOffset
}
