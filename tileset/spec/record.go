package spec

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/eak1mov/go-bluenoise/tile"
)

var ErrInvalidCount = errors.New("invalid point count")

const vec2Length = 8

// AppendTile appends the wire encoding of t to buffer.
// Subdivision maps must hold exactly header.GridSize() ids each.
func AppendTile(buffer []byte, header *Header, t *tile.Tile) []byte {
	for _, id := range t.Neighbors {
		buffer = ByteOrder.AppendUint32(buffer, uint32(id))
	}
	for variant := range int(header.SubdivisionCount) {
		subdiv := t.Subdivisions[variant]
		for k := range header.GridSize() {
			buffer = ByteOrder.AppendUint32(buffer, uint32(subdiv[k]))
		}
	}
	buffer = appendVec2s(buffer, t.Points)
	buffer = appendVec2s(buffer, t.SubPoints)
	return buffer
}

func appendVec2s(buffer []byte, points []tile.Vec2) []byte {
	buffer = ByteOrder.AppendUint32(buffer, uint32(len(points)))
	for _, p := range points {
		buffer = ByteOrder.AppendUint32(buffer, math.Float32bits(p.X))
		buffer = ByteOrder.AppendUint32(buffer, math.Float32bits(p.Y))
	}
	return buffer
}

// ReadTile decodes one tile record at the cursor position.
// Child and neighbor ids are copied as stored; they are not range checked.
func ReadTile(c *Cursor, header *Header) (tile.Tile, error) {
	t := tile.Tile{}
	for i := range t.Neighbors {
		t.Neighbors[i] = tile.ID(c.Int32())
	}

	gridSize := header.GridSize()
	variants := max(int(header.SubdivisionCount), 1)
	if gridSize > c.Remaining()/4/variants {
		return tile.Tile{}, io.ErrUnexpectedEOF
	}
	t.Subdivisions = make([][]tile.ID, header.SubdivisionCount)
	for variant := range t.Subdivisions {
		subdiv := make([]tile.ID, gridSize)
		for k := range subdiv {
			subdiv[k] = tile.ID(c.Int32())
		}
		t.Subdivisions[variant] = subdiv
	}

	var err error
	if t.Points, err = readVec2s(c); err != nil {
		return tile.Tile{}, err
	}
	if t.SubPoints, err = readVec2s(c); err != nil {
		return tile.Tile{}, err
	}
	return t, c.Err()
}

func readVec2s(c *Cursor) ([]tile.Vec2, error) {
	count := c.Int32()
	if err := c.Err(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d at offset %d", ErrInvalidCount, count, c.Offset()-4)
	}
	if int(count) > c.Remaining()/vec2Length {
		return nil, io.ErrUnexpectedEOF
	}
	points := make([]tile.Vec2, count)
	for i := range points {
		points[i].X = c.Float32()
		points[i].Y = c.Float32()
	}
	return points, c.Err()
}
