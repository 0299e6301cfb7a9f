// Package spec implements the binary Recursive Wang Tile set format.
//
// A tileset is a header of three int32 values (tile count, subtiles per axis,
// subdivision variant count) followed by one record per tile. All integers and
// floats are 32 bits wide and stored in host byte order.
package spec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// ByteOrder is the byte order of every field in a tileset.
var ByteOrder byteOrder = binary.NativeEndian

type Header struct {
	TileCount        int32
	SubtilesPerAxis  int32
	SubdivisionCount int32
}

const HeaderLength = 12

var ErrInvalidHeader = errors.New("invalid tileset header")

// GridSize returns the number of child ids in one subdivision map.
func (h *Header) GridSize() int {
	return int(h.SubtilesPerAxis) * int(h.SubtilesPerAxis)
}

func SerializeHeader(header *Header) []byte {
	var buffer bytes.Buffer
	binary.Write(&buffer, ByteOrder, header)
	return buffer.Bytes()
}

func DeserializeHeader(buffer []byte) (*Header, error) {
	header := Header{}
	err := binary.Read(bytes.NewReader(buffer), ByteOrder, &header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if header.TileCount < 1 || header.SubtilesPerAxis < 1 || header.SubdivisionCount < 1 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidHeader, header)
	}
	return &header, nil
}
