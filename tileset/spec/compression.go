package spec

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Compression is the whole-file encoding of a tileset.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
)

var ErrUnsupportedCompression = errors.New("unsupported tileset compression")

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// CompressionForPath picks the compression implied by a file name suffix.
func CompressionForPath(filePath string) Compression {
	if strings.HasSuffix(filePath, ".gz") {
		return CompressionGzip
	}
	return CompressionNone
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewDecoder wraps r so that reads return the decoded tileset bytes.
func NewDecoder(r io.Reader, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		reader, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return reader, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, compression)
}

// NewEncoder wraps w so that written tileset bytes are encoded. Close flushes
// the encoding but does not close w.
func NewEncoder(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		writer, _ := gzip.NewWriterLevel(w, gzip.BestCompression)
		return writer, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, compression)
}

func Compress(data []byte, compression Compression) ([]byte, error) {
	var buffer bytes.Buffer
	encoder, err := NewEncoder(&buffer, compression)
	if err != nil {
		return nil, err
	}
	if _, err := encoder.Write(data); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func Decompress(data []byte, compression Compression) ([]byte, error) {
	decoder, err := NewDecoder(bytes.NewReader(data), compression)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()
	return io.ReadAll(decoder)
}
