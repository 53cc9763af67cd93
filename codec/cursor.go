package codec

import (
	"encoding/binary"
	"fmt"
)

// Cursor reads a bounded byte range. Every read checks the remaining
// length first and fails with a *BufferError rather than reading past
// the end.
type Cursor struct {
	data []byte
	off  int
	base int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset is the absolute offset of the next read in the outermost buffer.
func (c *Cursor) Offset() int {
	return c.base + c.off
}

func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

func (c *Cursor) need(n int) error {
	if n < 0 || n > c.Remaining() {
		return &BufferError{Offset: c.Offset(), Need: n, Have: c.Remaining()}
	}
	return nil
}

func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.data[c.off]
	c.off++
	return b, nil
}

func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v, nil
}

// ReadBytes returns the next n bytes. The result aliases the buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.off : c.off+n : c.off+n]
	c.off += n
	return b, nil
}

// Sub returns a cursor over the next n bytes and advances past them.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	sub := &Cursor{data: c.data[c.off : c.off+n], base: c.Offset()}
	c.off += n
	return sub, nil
}

func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.off += n
	return nil
}

// readBlock reads a u32 length and returns a sub cursor over that many bytes.
func (c *Cursor) readBlock() (*Cursor, error) {
	n, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(c.Remaining()) {
		return nil, &BufferError{Offset: c.Offset(), Need: int(min(uint64(n), 1<<31-1)), Have: c.Remaining(),
			Message: fmt.Sprintf("block length %d exceeds remaining %d bytes", n, c.Remaining())}
	}
	return c.Sub(int(n))
}

// end fails if c has unread bytes.
func (c *Cursor) end() error {
	if c.Remaining() != 0 {
		return &BufferError{Offset: c.Offset(), Have: c.Remaining(),
			Message: fmt.Sprintf("%d unread bytes at end of block", c.Remaining())}
	}
	return nil
}
