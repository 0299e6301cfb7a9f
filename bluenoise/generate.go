package bluenoise

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

type viewport struct {
	left, bottom, right, top float64
}

func (v *viewport) contains(x, y float64) bool {
	return x >= v.left && x <= v.right && y >= v.bottom && y <= v.top
}

func (v *viewport) intersects(x, y, size float64) bool {
	return x+size >= v.left && x <= v.right && y+size >= v.bottom && y <= v.top
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}

// Generate returns the points of the sequence inside the viewport (left, bottom,
// right, top), given in [-0.5, 0.5] coordinates, at the given density.
//
// The magnification that drives subdivision depth comes from the unclamped
// viewport height, so zoomed-in viewports descend deeper. A degenerate viewport
// or a non-positive density yields no points. If more than MaxPoints points are
// accepted the result holds the first MaxPoints in traversal order and the error
// wraps ErrCapacityExceeded.
func (c *Context) Generate(density, left, bottom, right, top float32) ([]Point, error) {
	c.points = c.points[:0]
	c.stats = Stats{}

	vp := viewport{
		left:   float64(left) + 0.5,
		bottom: float64(bottom) + 0.5,
		right:  float64(right) + 0.5,
		top:    float64(top) + 0.5,
	}
	mag := math.Pow(vp.top-vp.bottom, -2)
	vp = viewport{
		left:   clamp01(vp.left),
		bottom: clamp01(vp.bottom),
		right:  clamp01(vp.right),
		top:    clamp01(vp.top),
	}
	if !(vp.left < vp.right && vp.bottom < vp.top) || !(density > 0) {
		return c.points, nil
	}

	g := sampler{Context: c, vp: vp, mag: mag, density: float64(density)}
	ok := g.root() && g.descend()
	c.stats.Points = len(c.points)
	c.stats.Truncated = !ok

	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("bluenoise: generate", "density", density, "mag", mag,
			"points", c.stats.Points, "nodes", c.stats.Nodes, "level", c.stats.MaxLevel)
	}
	if !ok {
		return c.points, fmt.Errorf("%w: %d points", ErrCapacityExceeded, cap(c.points))
	}
	return c.points, nil
}

type sampler struct {
	*Context
	vp      viewport
	mag     float64
	density float64
}

// emit appends a point, shifting it back to [-0.5, 0.5]. It reports false when
// the buffer is full.
func (g *sampler) emit(x, y, rank float64) bool {
	if len(g.points) == cap(g.points) {
		return false
	}
	g.points = append(g.points, Point{X: float32(x - 0.5), Y: float32(y - 0.5), Rank: float32(rank)})
	return true
}

// root tests the root tile's own points.
func (g *sampler) root() bool {
	root := g.set.Root()
	scaled := g.mag * g.density
	count := int(min(float64(len(root.Points)), scaled))
	factor := 1 / scaled
	for i := range count {
		p := root.Points[i]
		x, y := float64(p.X), float64(p.Y)
		if !g.vp.contains(x, y) {
			continue
		}
		if float64(g.field.Sample(p.X, p.Y)) < float64(i+1)*factor {
			continue
		}
		if !g.emit(x, y, float64(i)*factor) {
			return false
		}
	}
	return true
}

// descend walks the subdivision tree depth-first with an explicit stack.
// Children are pushed in reverse so they pop in row-major order.
func (g *sampler) descend() bool {
	subtiles := g.set.SubtilesPerAxis()
	scaled := g.mag * g.density

	g.stack = append(g.stack[:0], node{id: 0})
	for len(g.stack) > 0 {
		n := g.stack[len(g.stack)-1]
		g.stack = g.stack[:len(g.stack)-1]

		tileSize := math.Pow(float64(subtiles), -float64(n.level))
		if !g.vp.intersects(n.x, n.y, tileSize) {
			continue
		}
		g.stats.Nodes++
		g.stats.MaxLevel = max(g.stats.MaxLevel, n.level)

		t := g.set.Tile(n.id)
		depth := math.Pow(float64(subtiles), float64(2*n.level))
		threshold := g.mag/depth*g.density - float64(len(t.Points))
		count := int(min(float64(len(t.SubPoints)), threshold))
		factor := depth / scaled
		for i := range count {
			p := t.SubPoints[i]
			x := n.x + float64(p.X)*tileSize
			y := n.y + float64(p.Y)*tileSize
			if !g.vp.contains(x, y) {
				continue
			}
			if float64(g.field.Sample(float32(x), float32(y))) < float64(i+len(t.Points))*factor {
				continue
			}
			if !g.emit(x, y, float64(n.level+1)+float64(i)*factor) {
				return false
			}
		}

		if threshold <= float64(len(t.SubPoints)) || n.level >= g.maxLevel {
			continue
		}
		// Variant 0 is always used; other subdivision variants are ignored.
		scale := tileSize / float64(subtiles)
		for k := subtiles*subtiles - 1; k >= 0; k-- {
			tx, ty := k%subtiles, k/subtiles
			g.stack = append(g.stack, node{
				id:    t.Child(0, subtiles, tx, ty),
				x:     n.x + float64(tx)*scale,
				y:     n.y + float64(ty)*scale,
				level: n.level + 1,
			})
		}
	}
	return true
}
