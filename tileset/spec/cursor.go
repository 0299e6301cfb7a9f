package spec

import (
	"io"
	"math"
)

// Cursor is a bounds-checked reader over a tileset buffer.
// The first failed read sticks: later reads return zero values and Err reports it.
type Cursor struct {
	data   []byte
	offset int
	err    error
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) Err() error { return c.err }

func (c *Cursor) Offset() int { return c.offset }

func (c *Cursor) Remaining() int { return len(c.data) - c.offset }

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) {
	if c.err != nil {
		return
	}
	if n > c.Remaining() {
		c.fail(io.ErrUnexpectedEOF)
		return
	}
	c.offset += n
}

func (c *Cursor) Int32() int32 {
	if c.err != nil {
		return 0
	}
	if c.Remaining() < 4 {
		c.fail(io.ErrUnexpectedEOF)
		return 0
	}
	value := ByteOrder.Uint32(c.data[c.offset:])
	c.offset += 4
	return int32(value)
}

func (c *Cursor) Float32() float32 {
	if c.err != nil {
		return 0
	}
	if c.Remaining() < 4 {
		c.fail(io.ErrUnexpectedEOF)
		return 0
	}
	value := ByteOrder.Uint32(c.data[c.offset:])
	c.offset += 4
	return math.Float32frombits(value)
}

func (c *Cursor) fail(err error) {
	c.err = err
	c.offset = len(c.data)
}
