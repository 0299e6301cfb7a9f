package bluenoise_test

import (
	"math/rand/v2"
	"testing"

	"github.com/eak1mov/go-bluenoise/bluenoise"
	"github.com/eak1mov/go-bluenoise/internal"
	"github.com/google/go-cmp/cmp"
)

func TestSortByRank(t *testing.T) {
	points := []bluenoise.Point{
		{X: 1, Rank: 2.5},
		{X: 2, Rank: 0.1},
		{X: 3, Rank: 1},
		{X: 4, Rank: 0.1},
	}
	bluenoise.SortByRank(points)
	want := []bluenoise.Point{
		{X: 2, Rank: 0},
		{X: 4, Rank: 1},
		{X: 3, Rank: 2},
		{X: 1, Rank: 3},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("SortByRank mismatch (-want+got):\n%v", diff)
	}

	bluenoise.SortByRank(nil)
}

func TestSortByRankCanonical(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	random := make([]bluenoise.Point, 1000)
	for i := range random {
		random[i] = bluenoise.Point{X: float32(i), Rank: float32(rng.IntN(50))}
	}

	ctx := bluenoise.New(internal.SyntheticSet(internal.DefaultSetConfig), 1<<16)
	generated, err := ctx.Generate(5000, -0.3, -0.5, 0.4, 0.2)
	if err != nil {
		t.Fatal(err)
	}

	for name, points := range map[string][]bluenoise.Point{"Random": random, "Generated": generated} {
		t.Run(name, func(t *testing.T) {
			type key struct{ X, Y float32 }
			original := make(map[key]float32, len(points))
			for _, p := range points {
				original[key{p.X, p.Y}] = p.Rank
			}
			bluenoise.SortByRank(points)

			for i, p := range points {
				if p.Rank != float32(i) {
					t.Fatalf("points[%d].Rank = %v, want = %v", i, p.Rank, i)
				}
				if i == 0 {
					continue
				}
				prev, cur := original[key{points[i-1].X, points[i-1].Y}], original[key{p.X, p.Y}]
				if prev > cur {
					t.Fatalf("points[%d] has original rank %v after %v", i, cur, prev)
				}
			}
		})
	}
}
