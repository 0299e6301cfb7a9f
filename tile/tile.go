// Package tile provides the Recursive Wang Tile types shared by the loader and the sampler.
package tile

// ID is the index of a tile inside its tileset.
type ID int32

// Vec2 is a point in the unit square of a tile.
type Vec2 struct {
	X float32
	Y float32
}

// Edge directions for Tile.Neighbors.
const (
	North = iota
	East
	South
	West
)

// Tile is a single Wang tile with its two progressive point pools.
type Tile struct {
	// Neighbors are edge-matching tile ids in N, E, S, W order.
	// They are only meaningful when authoring a tileset.
	Neighbors [4]ID

	// Subdivisions holds alternative ways to split the tile into S*S children,
	// each a row-major grid of child ids (index ty*S+tx).
	Subdivisions [][]ID

	// Points is the tile's own contribution, sorted by priority.
	Points []Vec2

	// SubPoints is the contribution of the tile's children, sorted by priority.
	SubPoints []Vec2
}

// Child returns the id of the child at (tx, ty) in the given subdivision variant.
func (t *Tile) Child(variant, subtiles, tx, ty int) ID {
	return t.Subdivisions[variant][ty*subtiles+tx]
}

type Visitor interface {
	// VisitTiles visits all tiles in id order, calling the visitor for each.
	// It returns the first error returned by the visitor.
	VisitTiles(visitor func(ID, *Tile) error) error
}
