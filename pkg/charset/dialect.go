// Package charset maps Quill's 8-bit character sets to Unicode.
//
// Two dialects exist: the native QL character set used by Quill on the Sinclair QL,
// and the DOS code page 437 used by the later PC version of Quill. The dialect also
// fixes the byte order of the multi-byte fields in a Quill file header.
package charset

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Dialect identifies which flavour of Quill produced a file.
type Dialect uint8

const (
	// QL is the original Sinclair QL format: big-endian, QL character set.
	QL Dialect = iota
	// PC is the later PC/DOS format: little-endian, code page 437.
	PC
)

// String returns the lowercase dialect name.
func (d Dialect) String() string {
	switch d {
	case QL:
		return "ql"
	case PC:
		return "pc"
	default:
		return fmt.Sprintf("dialect(%d)", uint8(d))
	}
}

// ByteOrder returns the byte order used for header fields in this dialect.
func (d Dialect) ByteOrder() binary.ByteOrder {
	if d == PC {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// IsValid reports whether d is a known dialect.
func (d Dialect) IsValid() bool {
	return d == QL || d == PC
}

// ParseDialect parses "ql" or "pc" (case-insensitive).
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ql":
		return QL, nil
	case "pc", "dos":
		return PC, nil
	default:
		return 0, fmt.Errorf("unknown dialect %q; valid dialects: ql, pc", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := ParseDialect(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
