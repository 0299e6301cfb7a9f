package tile

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterTiles returns an iterator over all tiles of a Visitor.
// Iteration panics if the visitor fails for any reason other than early exit.
func IterTiles(v Visitor) iter.Seq2[ID, *Tile] {
	return func(yield func(ID, *Tile) bool) {
		err := v.VisitTiles(func(id ID, t *Tile) error {
			if !yield(id, t) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

// IterPoints returns an iterator over the own points of every tile, in tile then priority order.
func IterPoints(v Visitor) iter.Seq2[ID, Vec2] {
	return func(yield func(ID, Vec2) bool) {
		for id, t := range IterTiles(v) {
			for _, p := range t.Points {
				if !yield(id, p) {
					return
				}
			}
		}
	}
}
