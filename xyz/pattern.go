// Package xyz provides API for reading and writing point tiles in XYZ directory format,
// where each tile of a zoom pyramid is stored as an individual file with a path like "/z/x/y.bin".
package xyz

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPattern = errors.New("bluenoise: invalid file pattern")

// TileID addresses one square of the zoom pyramid. Zoom level Z splits the
// [-0.5, 0.5]² plane into 2^Z x 2^Z tiles, with Y growing downwards.
type TileID struct {
	X uint32
	Y uint32
	Z uint32
}

// Viewport returns the region of the plane covered by the tile.
func (id TileID) Viewport() (left, bottom, right, top float32) {
	size := 1 / float32(uint64(1)<<id.Z)
	left = -0.5 + float32(id.X)*size
	top = 0.5 - float32(id.Y)*size
	return left, top - size, left + size, top
}

func validatePattern(pattern string) error {
	for _, p := range []string{"{x}", "{y}", "{z}"} {
		if !strings.Contains(pattern, p) {
			return fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, p)
		}
	}
	return nil
}

func formatPattern(pattern string, tileID TileID) string {
	return strings.NewReplacer(
		"{x}", fmt.Sprint(tileID.X),
		"{y}", fmt.Sprint(tileID.Y),
		"{z}", fmt.Sprint(tileID.Z),
	).Replace(pattern)
}
