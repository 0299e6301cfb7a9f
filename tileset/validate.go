package tileset

import (
	"errors"
	"fmt"

	"github.com/eak1mov/go-bluenoise/tile"
)

var ErrInvalidReference = errors.New("tile reference out of range")

// Validate checks that every neighbor and child id refers to a tile of the set
// and that every subdivision map has the expected size.
// Loading does not call it; sampling a set that fails validation may panic.
func (s *Set) Validate() error {
	var errs []error
	check := func(id tile.ID, what string, ref tile.ID) {
		if ref < 0 || int(ref) >= len(s.tiles) {
			errs = append(errs, fmt.Errorf("%w: tile %d %s = %d", ErrInvalidReference, id, what, ref))
		}
	}
	gridSize := s.header.GridSize()
	for id, t := range tile.IterTiles(s) {
		for i, ref := range t.Neighbors {
			check(id, fmt.Sprintf("neighbor[%d]", i), ref)
		}
		if len(t.Subdivisions) != s.SubdivisionCount() {
			errs = append(errs, fmt.Errorf("%w: tile %d has %d subdivisions, want %d",
				ErrInvalidReference, id, len(t.Subdivisions), s.SubdivisionCount()))
		}
		for variant, subdiv := range t.Subdivisions {
			if len(subdiv) != gridSize {
				errs = append(errs, fmt.Errorf("%w: tile %d subdivision %d has %d children, want %d",
					ErrInvalidReference, id, variant, len(subdiv), gridSize))
			}
			for k, ref := range subdiv {
				check(id, fmt.Sprintf("subdivision[%d][%d]", variant, k), ref)
			}
		}
	}
	return errors.Join(errs...)
}
