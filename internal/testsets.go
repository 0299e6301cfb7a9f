// Package internal builds deterministic tilesets for tests.
package internal

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-bluenoise/tile"
	"github.com/eak1mov/go-bluenoise/tileset"
	"github.com/stretchr/testify/require"
)

// SetConfig describes a synthetic tileset.
// Every tile gets Points own points and Subtiles²·Points − Points sub-points, so that a
// subdivided tile contributes the same number of points per area as its parent.
type SetConfig struct {
	Tiles    int
	Subtiles int
	Variants int
	Points   int
	Seed     uint64
}

var DefaultSetConfig = SetConfig{
	Tiles:    8,
	Subtiles: 2,
	Variants: 2,
	Points:   8,
	Seed:     42,
}

// SyntheticSet returns a tileset with uniformly scattered points and random child ids.
func SyntheticSet(cfg SetConfig) *tileset.Set {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	randomID := func() tile.ID { return tile.ID(rng.IntN(cfg.Tiles)) }
	randomPoints := func(n int) []tile.Vec2 {
		points := make([]tile.Vec2, n)
		for i := range points {
			points[i] = tile.Vec2{X: rng.Float32(), Y: rng.Float32()}
		}
		return points
	}

	gridSize := cfg.Subtiles * cfg.Subtiles
	tiles := make([]tile.Tile, cfg.Tiles)
	for i := range tiles {
		t := &tiles[i]
		for k := range t.Neighbors {
			t.Neighbors[k] = randomID()
		}
		t.Subdivisions = make([][]tile.ID, cfg.Variants)
		for v := range t.Subdivisions {
			t.Subdivisions[v] = make([]tile.ID, gridSize)
			for k := range t.Subdivisions[v] {
				t.Subdivisions[v][k] = randomID()
			}
		}
		t.Points = randomPoints(cfg.Points)
		t.SubPoints = randomPoints(gridSize*cfg.Points - cfg.Points)
	}
	return tileset.New(cfg.Subtiles, cfg.Variants, tiles)
}

// DiagonalSet is a single tile with four points on the diagonal and no sub-points.
func DiagonalSet() *tileset.Set {
	return tileset.New(1, 1, []tile.Tile{{
		Subdivisions: [][]tile.ID{{0}},
		Points: []tile.Vec2{
			{X: 0.1, Y: 0.1},
			{X: 0.3, Y: 0.3},
			{X: 0.6, Y: 0.6},
			{X: 0.9, Y: 0.9},
		},
	}})
}

// WriteSet writes s into the test's temp dir and returns the file path.
func WriteSet(t *testing.T, s *tileset.Set, fileName string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, tileset.Write(filePath, s))
	return filePath
}
