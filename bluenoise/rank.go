package bluenoise

import (
	"cmp"
	"slices"
)

// SortByRank sorts points by ascending rank and replaces each rank with the
// point's index. Ties keep their generation order. Indices above 2^24 are not
// exactly representable in a float32 rank.
func SortByRank(points []Point) {
	slices.SortStableFunc(points, func(a, b Point) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	for i := range points {
		points[i].Rank = float32(i)
	}
}
