// Package density provides scalar fields that thin out generated points.
//
// A Field is a width×height grid of values in [0, 1]; higher values accept points
// more readily. Fields are sampled in unit-square coordinates with nearest-cell
// lookup and no interpolation. A nil *Field behaves as uniform density 1.
package density

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrInvalidArgument = errors.New("bluenoise: invalid argument")

// Field is an immutable density grid in row-major order, row 0 at the top.
type Field struct {
	width  int
	height int
	values []float32
}

// New wraps values as a width×height field. The slice is not copied.
func New(width, height int, values []float32) (*Field, error) {
	if width < 1 || height < 1 || len(values) != width*height {
		return nil, fmt.Errorf("%w: %dx%d field with %d values", ErrInvalidArgument, width, height, len(values))
	}
	return &Field{width: width, height: height, values: values}, nil
}

// FromGray converts the first channel of each pixel to 1 - p/255, so darker
// pixels produce higher density. bytesPerPixel is the stride between pixels.
func FromGray(pixels []byte, width, height, bytesPerPixel int) *Field {
	const scale = 1.0 / 255.0
	values := make([]float32, width*height)
	for i := range values {
		values[i] = 1 - float32(pixels[i*bytesPerPixel])*scale
	}
	return &Field{width: width, height: height, values: values}
}

// FromColorKey builds a binary mask: a cell is 1 where the pixel differs from
// background and 0 where it matches, or the reverse when invert is set.
// Pixel values are the first bytesPerPixel bytes read in host byte order, so a
// background for RGBA pixels is PackColor of the same color. background is
// compared as given: bits above the pixel width never match.
func FromColorKey(pixels []byte, width, height, bytesPerPixel int, background uint32, invert bool) (*Field, error) {
	if bytesPerPixel < 1 || bytesPerPixel > 4 {
		return nil, fmt.Errorf("%w: %d bytes per pixel, want 1..4", ErrInvalidArgument, bytesPerPixel)
	}

	values := make([]float32, width*height)
	for i := range values {
		offset := i * bytesPerPixel
		value := PackBytes(pixels[offset : offset+bytesPerPixel])
		if (value != background) != invert {
			values[i] = 1
		}
	}
	return &Field{width: width, height: height, values: values}, nil
}

// PackBytes reads up to four bytes as a host-order uint32, zero-padded.
func PackBytes(b []byte) uint32 {
	var word [4]byte
	copy(word[:], b)
	return binary.NativeEndian.Uint32(word[:])
}

func (f *Field) Width() int { return f.width }

func (f *Field) Height() int { return f.height }

// At returns the value of cell (ix, iy); row 0 is the top of the source image.
func (f *Field) At(ix, iy int) float32 {
	return f.values[iy*f.width+ix]
}

// Sample returns the density at (x, y) in the unit square, y pointing up.
// The grid is fit into the square preserving aspect, centered, and cells
// outside the grid clamp to the nearest edge.
func (f *Field) Sample(x, y float32) float32 {
	if f == nil {
		return 1
	}
	y = 1 - y
	scale := float32(max(f.width, f.height))
	tx := (x-0.5)*scale + float32(f.width)/2
	ty := (y-0.5)*scale + float32(f.height)/2
	ix := min(max(int(tx), 0), f.width-1)
	iy := min(max(int(ty), 0), f.height-1)
	return f.values[iy*f.width+ix]
}
