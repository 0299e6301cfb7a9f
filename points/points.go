// Package points provides a portable binary format for generated point sets.
package points

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/eak1mov/go-bluenoise/bluenoise"
)

// Item is a single fixed-width record: the point, its rank and its Hilbert cell.
// Records are little-endian regardless of the host, unlike tilesets.
type Item struct {
	X    float32
	Y    float32
	Rank float32
	Cell uint32
}

// ItemLength is the encoded size of an Item in bytes.
const ItemLength = 16

func (i Item) Point() bluenoise.Point {
	return bluenoise.Point{X: i.X, Y: i.Y, Rank: i.Rank}
}

func FromPoints(pts []bluenoise.Point) []Item {
	items := make([]Item, len(pts))
	for i, p := range pts {
		items[i] = Item{X: p.X, Y: p.Y, Rank: p.Rank, Cell: EncodeCell(p.X, p.Y)}
	}
	return items
}

func ToPoints(items []Item) []bluenoise.Point {
	pts := make([]bluenoise.Point, len(items))
	for i, item := range items {
		pts[i] = item.Point()
	}
	return pts
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(data []byte) ([]Item, error) {
	if len(data)%ItemLength != 0 {
		return nil, fmt.Errorf("points: %d bytes is not a multiple of %d: %w", len(data), ItemLength, io.ErrUnexpectedEOF)
	}
	items := make([]Item, len(data)/ItemLength)

	err := binary.Read(bytes.NewReader(data), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}
