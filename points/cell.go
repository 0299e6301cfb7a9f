package points

import (
	"cmp"
	"slices"

	"github.com/google/hilbert"
)

// CellOrder is the log2 resolution of the Hilbert grid over [-0.5, 0.5]².
const CellOrder = 16

const cellsPerAxis = 1 << CellOrder

var curve, _ = hilbert.NewHilbert(cellsPerAxis)

func quantize(v float32) int {
	return min(max(int((v+0.5)*cellsPerAxis), 0), cellsPerAxis-1)
}

// EncodeCell returns the Hilbert index of the grid cell containing (x, y).
// Points close on the curve are close in the plane, so sorting by cell groups
// nearby points together.
func EncodeCell(x, y float32) uint32 {
	cell, _ := curve.MapInverse(quantize(x), quantize(y))
	return uint32(cell)
}

// DecodeCell returns the center of a grid cell.
func DecodeCell(cell uint32) (x, y float32) {
	ix, iy, _ := curve.Map(int(cell))
	return (float32(ix)+0.5)/cellsPerAxis - 0.5, (float32(iy)+0.5)/cellsPerAxis - 0.5
}

// SortByCell orders items along the Hilbert curve, keeping rank order among
// items of the same cell.
func SortByCell(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(a.Cell, b.Cell)
	})
}
