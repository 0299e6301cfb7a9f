package bluenoise_test

import (
	"cmp"
	"errors"
	"slices"
	"testing"

	"github.com/eak1mov/go-bluenoise/bluenoise"
	"github.com/eak1mov/go-bluenoise/density"
	"github.com/eak1mov/go-bluenoise/internal"
	gcmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

const testMaxPoints = 1 << 20

type viewport struct {
	Name                     string
	Left, Bottom, Right, Top float32
}

var testViewports = []viewport{
	{Name: "Full", Left: -0.5, Bottom: -0.5, Right: 0.5, Top: 0.5},
	{Name: "Quarter", Left: 0, Bottom: 0, Right: 0.5, Top: 0.5},
	{Name: "Zoomed", Left: -0.1, Bottom: -0.05, Right: 0.15, Top: 0.2},
	{Name: "Overhang", Left: -1, Bottom: -0.8, Right: 0.2, Top: 0.3},
	{Name: "Wide", Left: -0.5, Bottom: -0.1, Right: 0.5, Top: 0.1},
}

func clone(points []bluenoise.Point) []bluenoise.Point {
	return slices.Clone(points)
}

func sortByPosition(points []bluenoise.Point) []bluenoise.Point {
	points = clone(points)
	slices.SortFunc(points, func(a, b bluenoise.Point) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
	})
	for i := range points {
		points[i].Rank = 0
	}
	return points
}

func gradientField() *density.Field {
	const size = 32
	pixels := make([]byte, size*size)
	for y := range size {
		for x := range size {
			pixels[y*size+x] = byte(x * 255 / (size - 1))
		}
	}
	return density.FromGray(pixels, size, size, 1)
}

func TestDiagonal(t *testing.T) {
	filePath := internal.WriteSet(t, internal.DiagonalSet(), "diagonal.bin")
	ctx, err := bluenoise.Create(filePath, 16)
	require.NoError(t, err)
	defer ctx.Close()

	points, err := ctx.Generate(4, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)

	want := []bluenoise.Point{
		{X: -0.4, Y: -0.4, Rank: 0},
		{X: -0.2, Y: -0.2, Rank: 0.25},
		{X: 0.1, Y: 0.1, Rank: 0.5},
		{X: 0.4, Y: 0.4, Rank: 0.75},
	}
	if diff := gcmp.Diff(want, points, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Fatalf("Generate mismatch (-want+got):\n%v", diff)
	}

	bluenoise.SortByRank(points)
	for i, p := range points {
		if p.Rank != float32(i) {
			t.Errorf("points[%d].Rank = %v, want = %v", i, p.Rank, i)
		}
	}
}

func TestCreateMissing(t *testing.T) {
	_, err := bluenoise.Create(t.TempDir()+"/missing.bin", 16)
	if !errors.Is(err, bluenoise.ErrLoad) {
		t.Errorf("Create(missing) = %v, want ErrLoad", err)
	}
}

func TestContainment(t *testing.T) {
	set := internal.SyntheticSet(internal.DefaultSetConfig)
	for _, field := range []*density.Field{nil, gradientField()} {
		ctx := bluenoise.New(set, testMaxPoints, bluenoise.WithDensity(field))
		for _, vp := range testViewports {
			t.Run(vp.Name, func(t *testing.T) {
				points, err := ctx.Generate(2000, vp.Left, vp.Bottom, vp.Right, vp.Top)
				require.NoError(t, err)
				require.NotEmpty(t, points)

				const eps = 1e-6
				left, right := max(vp.Left, -0.5), min(vp.Right, 0.5)
				bottom, top := max(vp.Bottom, -0.5), min(vp.Top, 0.5)
				for _, p := range points {
					if p.X < left-eps || p.X > right+eps || p.Y < bottom-eps || p.Y > top+eps {
						t.Errorf("point %+v outside viewport %+v", p, vp)
					}
				}
			})
		}
	}
}

func TestDeterminism(t *testing.T) {
	set := internal.SyntheticSet(internal.DefaultSetConfig)
	ctx := bluenoise.New(set, testMaxPoints, bluenoise.WithDensity(gradientField()))
	for _, vp := range testViewports {
		first, err := ctx.Generate(3000, vp.Left, vp.Bottom, vp.Right, vp.Top)
		require.NoError(t, err)
		first = clone(first)

		second, err := ctx.Generate(3000, vp.Left, vp.Bottom, vp.Right, vp.Top)
		require.NoError(t, err)
		if diff := gcmp.Diff(first, second); diff != "" {
			t.Errorf("%s: repeated Generate mismatch (-first+second):\n%v", vp.Name, diff)
		}
	}
}

func TestBufferReuse(t *testing.T) {
	set := internal.SyntheticSet(internal.DefaultSetConfig)
	ctx := bluenoise.New(set, testMaxPoints)

	large, err := ctx.Generate(4096, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)
	require.Len(t, large, 4096)

	small, err := ctx.Generate(64, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)
	require.Less(t, len(small), len(large))
	// Both views share the Context buffer.
	require.Same(t, &large[0], &small[0])
}

func TestMonotonicity(t *testing.T) {
	set := internal.SyntheticSet(internal.DefaultSetConfig)
	for _, field := range []*density.Field{nil, gradientField()} {
		ctx := bluenoise.New(set, testMaxPoints, bluenoise.WithDensity(field))
		for _, vp := range testViewports {
			previous := 0
			for _, d := range []float32{1, 5, 16, 100, 250, 1000, 1500, 4096, 10000, 30000} {
				points, err := ctx.Generate(d, vp.Left, vp.Bottom, vp.Right, vp.Top)
				require.NoError(t, err)
				if len(points) < previous {
					t.Errorf("%s: Generate(%v) returned %d points, fewer than %d at lower density",
						vp.Name, d, len(points), previous)
				}
				previous = len(points)
			}
		}
	}
}

func TestProgressivePrefix(t *testing.T) {
	set := internal.SyntheticSet(internal.DefaultSetConfig)
	ctx := bluenoise.New(set, testMaxPoints)

	const dense = 4096
	sparse, err := ctx.Generate(dense/4, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)
	sparse = clone(sparse)

	full, err := ctx.Generate(dense, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)
	full = clone(full)

	ratio := float64(len(sparse)) / float64(len(full))
	require.InDelta(t, 0.25, ratio, 0.05, "count ratio %d/%d", len(sparse), len(full))

	bluenoise.SortByRank(full)
	prefix := full[:len(sparse)]
	if diff := gcmp.Diff(sortByPosition(sparse), sortByPosition(prefix)); diff != "" {
		t.Errorf("sorted prefix differs from low-density sample (-sparse+prefix):\n%v", diff)
	}
}

func TestProgressivePrefixStatistical(t *testing.T) {
	set := internal.SyntheticSet(internal.DefaultSetConfig)
	ctx := bluenoise.New(set, testMaxPoints, bluenoise.WithDensity(gradientField()))

	full, err := ctx.Generate(20000, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)
	full = clone(full)
	bluenoise.SortByRank(full)

	for _, fraction := range []int{2, 4, 8} {
		sparse, err := ctx.Generate(float32(20000/fraction), -0.5, -0.5, 0.5, 0.5)
		require.NoError(t, err)
		ratio := float64(len(sparse)) / float64(len(full))
		require.InDelta(t, 1/float64(fraction), ratio, 0.5/float64(fraction),
			"1/%d density: %d of %d points", fraction, len(sparse), len(full))
	}
}

func TestDensityMask(t *testing.T) {
	const size, lo, hi = 64, 16, 48
	pixels := make([]byte, size*size)
	for y := lo; y < hi; y++ {
		for x := lo; x < hi; x++ {
			pixels[y*size+x] = 1
		}
	}
	set := internal.SyntheticSet(internal.DefaultSetConfig)

	for _, invert := range []bool{false, true} {
		ctx := bluenoise.New(set, testMaxPoints)
		require.NoError(t, ctx.SetDensityFromColorKey(pixels, size, size, 1, 0, invert))

		points, err := ctx.Generate(4096, -0.5, -0.5, 0.5, 0.5)
		require.NoError(t, err)
		require.NotEmpty(t, points)

		const cell = 1.0 / size
		inner, outer := float32(lo)/size-0.5, float32(hi)/size-0.5
		for _, p := range points {
			inside := p.X >= inner-cell && p.X <= outer+cell && p.Y >= inner-cell && p.Y <= outer+cell
			strictlyInside := p.X > inner+cell && p.X < outer-cell && p.Y > inner+cell && p.Y < outer-cell
			if !invert && !inside {
				t.Errorf("point %+v outside the dense rectangle", p)
			}
			if invert && strictlyInside {
				t.Errorf("point %+v inside the masked rectangle", p)
			}
		}
	}
}

func TestCapacityExceeded(t *testing.T) {
	set := internal.SyntheticSet(internal.DefaultSetConfig)

	unbounded, err := bluenoise.New(set, testMaxPoints).Generate(4096, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)

	ctx := bluenoise.New(set, 100)
	points, err := ctx.Generate(4096, -0.5, -0.5, 0.5, 0.5)
	if !errors.Is(err, bluenoise.ErrCapacityExceeded) {
		t.Fatalf("Generate = %v, want ErrCapacityExceeded", err)
	}
	if diff := gcmp.Diff(unbounded[:100], points); diff != "" {
		t.Errorf("truncated result is not a prefix (-want+got):\n%v", diff)
	}
	if !ctx.Stats().Truncated {
		t.Errorf("Stats().Truncated = false")
	}
}

func TestEmpty(t *testing.T) {
	ctx := bluenoise.New(internal.SyntheticSet(internal.DefaultSetConfig), testMaxPoints)
	for _, tc := range []struct {
		Name                     string
		Density                  float32
		Left, Bottom, Right, Top float32
	}{
		{Name: "ZeroWidth", Density: 1000, Left: 0.1, Bottom: -0.5, Right: 0.1, Top: 0.5},
		{Name: "ZeroHeight", Density: 1000, Left: -0.5, Bottom: 0.2, Right: 0.5, Top: 0.2},
		{Name: "Inverted", Density: 1000, Left: 0.5, Bottom: 0.5, Right: -0.5, Top: -0.5},
		{Name: "Outside", Density: 1000, Left: 1, Bottom: 1, Right: 2, Top: 2},
		{Name: "ZeroDensity", Density: 0, Left: -0.5, Bottom: -0.5, Right: 0.5, Top: 0.5},
		{Name: "NegativeDensity", Density: -10, Left: -0.5, Bottom: -0.5, Right: 0.5, Top: 0.5},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			points, err := ctx.Generate(tc.Density, tc.Left, tc.Bottom, tc.Right, tc.Top)
			require.NoError(t, err)
			require.Empty(t, points)
		})
	}
}

func TestZoomDescendsDeeper(t *testing.T) {
	ctx := bluenoise.New(internal.SyntheticSet(internal.DefaultSetConfig), testMaxPoints)

	_, err := ctx.Generate(1024, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)
	full := ctx.Stats()
	require.Equal(t, 3, full.MaxLevel)

	points, err := ctx.Generate(1024, -0.125, -0.125, 0.125, 0.125)
	require.NoError(t, err)
	zoomed := ctx.Stats()
	require.Greater(t, zoomed.MaxLevel, full.MaxLevel)
	// Zooming keeps the on-screen density roughly constant.
	require.InDelta(t, 1024, len(points), 300)
}

func TestMaxLevel(t *testing.T) {
	// A single 1x1 tile subdivides into itself forever.
	for _, level := range []int{0, 5, bluenoise.DefaultMaxLevel} {
		ctx := bluenoise.New(internal.DiagonalSet(), 16, bluenoise.WithMaxLevel(level))
		points, err := ctx.Generate(8, -0.5, -0.5, 0.5, 0.5)
		require.NoError(t, err)
		require.Len(t, points, 4)
		require.Equal(t, level, ctx.Stats().MaxLevel)
		require.Equal(t, level+1, ctx.Stats().Nodes)
	}
}

func TestSetDensity(t *testing.T) {
	ctx := bluenoise.New(internal.SyntheticSet(internal.DefaultSetConfig), testMaxPoints)
	require.Nil(t, ctx.Density())

	ctx.SetDensityFromGray([]byte{0, 0, 0, 0}, 2, 2, 1)
	field := ctx.Density()
	require.NotNil(t, field)

	err := ctx.SetDensityFromColorKey(make([]byte, 20), 2, 2, 5, 0, false)
	require.ErrorIs(t, err, bluenoise.ErrInvalidArgument)
	require.Same(t, field, ctx.Density())

	// An all-white image has zero density everywhere.
	ctx.SetDensityFromGray([]byte{255, 255, 255, 255}, 2, 2, 1)
	points, err := ctx.Generate(1000, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)
	require.Empty(t, points)

	ctx.SetDensity(nil)
	points, err = ctx.Generate(1000, -0.5, -0.5, 0.5, 0.5)
	require.NoError(t, err)
	require.NotEmpty(t, points)
}
