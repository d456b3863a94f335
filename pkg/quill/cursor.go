package quill

import "encoding/binary"

// cursor is a bounds-checked reader over an owned buffer.
// Reads past the end return a truncation error instead of panicking.
type cursor struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

func newCursor(buf []byte, order binary.ByteOrder) *cursor {
	return &cursor{buf: buf, order: order}
}

func (c *cursor) need(n int) error {
	if n < 0 || c.pos+n > len(c.buf) {
		return truncatedAt(c.pos, c.pos+n, len(c.buf))
	}
	return nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

func (c *cursor) uint16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// until returns the bytes from the current position up to, but excluding, the
// next zero byte at or before limit, and advances past the terminator.
// found is false if limit was reached first.
func (c *cursor) until(limit int) (span []byte, found bool, err error) {
	start := c.pos
	for i := start; i < limit; i++ {
		if i >= len(c.buf) {
			return nil, false, truncatedAt(i, limit, len(c.buf))
		}
		if c.buf[i] == 0 {
			c.pos = i + 1
			return c.buf[start:i], true, nil
		}
	}
	return nil, false, nil
}
