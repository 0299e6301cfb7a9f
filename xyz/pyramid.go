package xyz

import (
	"errors"
	"fmt"

	"github.com/eak1mov/go-bluenoise/bluenoise"
	"github.com/eak1mov/go-bluenoise/points"
)

// Build generates every tile of zoom levels 0..maxZoom and writes it to w.
// Each tile is sampled over its own viewport, so the point count per tile stays
// close to density at every zoom. Tile points are sorted by Hilbert cell.
// progress, if not nil, is called after each written tile.
func Build(ctx *bluenoise.Context, w *Writer, density float32, maxZoom int, progress func(TileID)) error {
	if maxZoom < 0 || maxZoom > 16 {
		return fmt.Errorf("%w: zoom %d out of range [0, 16]", bluenoise.ErrInvalidArgument, maxZoom)
	}

	for z := range uint32(maxZoom) + 1 {
		for y := range uint32(1) << z {
			for x := range uint32(1) << z {
				tileID := TileID{X: x, Y: y, Z: z}
				left, bottom, right, top := tileID.Viewport()

				pts, err := ctx.Generate(density, left, bottom, right, top)
				if err != nil && !errors.Is(err, bluenoise.ErrCapacityExceeded) {
					return fmt.Errorf("tile %v: %w", tileID, err)
				}

				items := points.FromPoints(pts)
				points.SortByCell(items)
				if err := w.WriteTile(tileID, items); err != nil {
					return err
				}
				if progress != nil {
					progress(tileID)
				}
			}
		}
	}

	return w.Finalize()
}

// TileCount returns the number of tiles in zoom levels 0..maxZoom.
func TileCount(maxZoom int) int {
	if maxZoom < 0 {
		return 0
	}
	return ((1 << (2 * (maxZoom + 1))) - 1) / 3
}
