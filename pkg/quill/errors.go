package quill

import (
	"errors"
	"fmt"
)

// Sentinel errors for the structural checks performed by Decode.
// Every error returned by Decode is a *DecodeError wrapping one of these.
var (
	// ErrBadHeaderLength is returned when the leading header block length is neither
	// 20 (QL) nor 5120 (PC).
	ErrBadHeaderLength = errors.New("bad header block length")

	// ErrBadMagic is returned when the file tag is not "vrm1qdf0".
	ErrBadMagic = errors.New("bad magic")

	// ErrUnterminatedHeaderOrFooter is returned when no zero byte ends the page
	// header or footer before the end of the text block.
	ErrUnterminatedHeaderOrFooter = errors.New("unterminated header or footer")

	// ErrTruncatedFile is returned when the buffer ends before an offset the file
	// header says must exist.
	ErrTruncatedFile = errors.New("truncated file")
)

// DecodeError describes a structural violation at a byte offset.
type DecodeError struct {
	// Err is one of the sentinel errors above.
	Err error

	// Offset is the byte offset from the start of the file where the problem was found.
	Offset int

	// Expected and Actual describe the mismatch, when there is one.
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	switch {
	case e.Expected != "" && e.Actual != "":
		return fmt.Sprintf("%v at offset %d: expected %s, got %s", e.Err, e.Offset, e.Expected, e.Actual)
	case e.Actual != "":
		return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.Actual)
	default:
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
}

// Unwrap returns the sentinel error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrorKind returns a short stable name for a decode error, or "" if err is not one.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrBadHeaderLength):
		return "bad_header_length"
	case errors.Is(err, ErrBadMagic):
		return "bad_magic"
	case errors.Is(err, ErrUnterminatedHeaderOrFooter):
		return "unterminated_header_or_footer"
	case errors.Is(err, ErrTruncatedFile):
		return "truncated_file"
	default:
		return ""
	}
}

func truncatedAt(offset, need, have int) *DecodeError {
	return &DecodeError{
		Err:      ErrTruncatedFile,
		Offset:   offset,
		Expected: fmt.Sprintf("%d bytes", need),
		Actual:   fmt.Sprintf("%d bytes", have),
	}
}
