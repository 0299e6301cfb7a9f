package xyz

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-bluenoise/points"
)

type Writer struct {
	filePattern string
	tiles       int
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/points/{z}/{x}/{y}.bin").
func NewWriter(filePattern string) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	return &Writer{filePattern: filePattern}, nil
}

func (w *Writer) WriteTile(tileID TileID, items []points.Item) error {
	filePath := formatPattern(w.filePattern, tileID)

	dirPath := filepath.Dir(filePath)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := points.WriteAll(items, &buf); err != nil {
		return err
	}

	w.tiles++
	return os.WriteFile(filePath, buf.Bytes(), 0644)
}

// Tiles returns the number of tiles written so far.
func (w *Writer) Tiles() int {
	return w.tiles
}

func (w *Writer) Finalize() error {
	return nil
}
