package tileset

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/eak1mov/go-bluenoise/tile"
	"github.com/eak1mov/go-bluenoise/tileset/spec"
)

// Writer authors a tileset file. Tiles must be written in id order.
type Writer struct {
	logger      *slog.Logger
	filePath    string
	compression spec.Compression
	header      spec.Header
	buffer      []byte
	written     int
}

type WriterOption func(*Writer)

func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) { w.logger = logger }
}

// WithCompression overrides the compression deduced from the file name.
func WithCompression(compression spec.Compression) WriterOption {
	return func(w *Writer) { w.compression = compression }
}

func NewWriter(filePath string, header spec.Header, opts ...WriterOption) (*Writer, error) {
	if _, err := spec.DeserializeHeader(spec.SerializeHeader(&header)); err != nil {
		return nil, err
	}
	w := &Writer{
		logger:      slog.New(slog.DiscardHandler),
		filePath:    filePath,
		compression: spec.CompressionForPath(filePath),
		header:      header,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.buffer = spec.SerializeHeader(&w.header)
	return w, nil
}

func (w *Writer) WriteTile(t *tile.Tile) error {
	if w.buffer == nil {
		panic("bluenoise: write after finalize")
	}
	if w.written == int(w.header.TileCount) {
		return fmt.Errorf("tileset: header declares %d tiles", w.header.TileCount)
	}
	if len(t.Subdivisions) != int(w.header.SubdivisionCount) {
		return fmt.Errorf("tileset: tile %d has %d subdivisions, want %d",
			w.written, len(t.Subdivisions), w.header.SubdivisionCount)
	}
	for variant, subdiv := range t.Subdivisions {
		if len(subdiv) != w.header.GridSize() {
			return fmt.Errorf("tileset: tile %d subdivision %d has %d children, want %d",
				w.written, variant, len(subdiv), w.header.GridSize())
		}
	}
	w.buffer = spec.AppendTile(w.buffer, &w.header, t)
	w.written++
	return nil
}

// Finalize compresses the encoded tiles and writes the file.
func (w *Writer) Finalize() error {
	if w.buffer == nil {
		panic("bluenoise: finalize called twice")
	}
	if w.written != int(w.header.TileCount) {
		return fmt.Errorf("tileset: wrote %d tiles, header declares %d", w.written, w.header.TileCount)
	}

	w.logger.Debug("bluenoise: compress", "bytes", len(w.buffer), "compression", w.compression)
	data, err := spec.Compress(w.buffer, w.compression)
	if err != nil {
		return err
	}

	w.logger.Debug("bluenoise: write", "path", w.filePath, "bytes", len(data))
	if err := os.WriteFile(w.filePath, data, 0644); err != nil {
		return err
	}
	w.buffer = nil

	w.logger.Debug("bluenoise: done!")
	return nil
}

// Write encodes a whole set into a file in one call.
func Write(filePath string, s *Set, opts ...WriterOption) error {
	w, err := NewWriter(filePath, s.Header(), opts...)
	if err != nil {
		return err
	}
	for _, t := range tile.IterTiles(s) {
		if err := w.WriteTile(t); err != nil {
			return err
		}
	}
	return w.Finalize()
}

// Bytes returns the uncompressed wire encoding of a set.
func Bytes(s *Set) []byte {
	header := s.Header()
	buffer := spec.SerializeHeader(&header)
	for i := range s.tiles {
		buffer = spec.AppendTile(buffer, &header, &s.tiles[i])
	}
	return buffer
}
