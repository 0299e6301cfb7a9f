// Package tileset loads Recursive Wang Tile sets into an immutable in-memory forest.
//
// The loader trusts its input: child and neighbor ids are stored as read and only
// checked by Validate. A Set must outlive every sampler built on it.
package tileset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/eak1mov/go-bluenoise/tile"
	"github.com/eak1mov/go-bluenoise/tileset/spec"
)

// ErrLoad is returned when a tileset cannot be opened or read to completion.
var ErrLoad = errors.New("bluenoise: cannot load tileset")

// Set is a read-only tileset. Tile 0 is the root.
type Set struct {
	header spec.Header
	tiles  []tile.Tile
}

// LoadFile reads a tileset from disk. Files ending in ".gz" are decompressed first.
func LoadFile(filePath string) (*Set, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer file.Close()

	decoder, err := spec.NewDecoder(file, spec.CompressionForPath(filePath))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, filePath, err)
	}
	defer decoder.Close()

	set, err := Load(decoder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return set, nil
}

// Load reads a whole tileset from r.
func Load(r io.Reader) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses an in-memory tileset. The returned Set does not retain data.
func LoadBytes(data []byte) (*Set, error) {
	header, err := spec.DeserializeHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	cursor := spec.NewCursor(data)
	cursor.Skip(spec.HeaderLength)

	// Each record is at least 4 neighbors and 2 counts.
	if int(header.TileCount) > cursor.Remaining()/24 {
		return nil, fmt.Errorf("%w: %d tiles: %w", ErrLoad, header.TileCount, io.ErrUnexpectedEOF)
	}

	tiles := make([]tile.Tile, header.TileCount)
	for i := range tiles {
		t, err := spec.ReadTile(cursor, header)
		if err != nil {
			return nil, fmt.Errorf("%w: tile %d: %w", ErrLoad, i, err)
		}
		tiles[i] = t
	}

	return &Set{header: *header, tiles: tiles}, nil
}

// New builds a Set from tiles already in memory. The slices are not copied.
func New(subtilesPerAxis, subdivisionCount int, tiles []tile.Tile) *Set {
	return &Set{
		header: spec.Header{
			TileCount:        int32(len(tiles)),
			SubtilesPerAxis:  int32(subtilesPerAxis),
			SubdivisionCount: int32(subdivisionCount),
		},
		tiles: tiles,
	}
}

func (s *Set) Header() spec.Header { return s.header }

func (s *Set) Len() int { return len(s.tiles) }

// SubtilesPerAxis is the number of children along each edge of a subdivided tile.
func (s *Set) SubtilesPerAxis() int { return int(s.header.SubtilesPerAxis) }

func (s *Set) SubdivisionCount() int { return int(s.header.SubdivisionCount) }

func (s *Set) Tile(id tile.ID) *tile.Tile { return &s.tiles[id] }

func (s *Set) Root() *tile.Tile { return &s.tiles[0] }

func (s *Set) VisitTiles(visitor func(tile.ID, *tile.Tile) error) error {
	for i := range s.tiles {
		if err := visitor(tile.ID(i), &s.tiles[i]); err != nil {
			return err
		}
	}
	return nil
}
