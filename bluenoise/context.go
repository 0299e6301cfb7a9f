// Package bluenoise generates progressive blue-noise point sets with Recursive Wang Tiles.
//
// A Context binds a tileset with an optional density field and an output buffer.
// Generate returns every point of the infinite sequence that falls into a viewport
// at a target density; SortByRank turns the result into a progressive ordering in
// which every prefix is a valid lower-density sample.
//
// The algorithm is described in "Recursive Wang Tiles for Real-Time Blue Noise",
// Kopf, Cohen-Or, Deussen, Lischinski, SIGGRAPH 2006.
package bluenoise

import (
	"errors"
	"log/slog"

	"github.com/eak1mov/go-bluenoise/density"
	"github.com/eak1mov/go-bluenoise/tile"
	"github.com/eak1mov/go-bluenoise/tileset"
)

var (
	// ErrCapacityExceeded reports that a Generate call accepted more points than
	// the Context can hold; the result is truncated to the first maxPoints points.
	ErrCapacityExceeded = errors.New("bluenoise: point capacity exceeded")

	// ErrLoad is returned by Create when the tileset cannot be read.
	ErrLoad = tileset.ErrLoad

	// ErrInvalidArgument is returned when a density source is malformed.
	ErrInvalidArgument = density.ErrInvalidArgument
)

// DefaultMaxLevel bounds the subdivision depth of a single Generate call.
const DefaultMaxLevel = 32

// Point is a generated sample. X and Y are in [-0.5, 0.5]. Rank is the progressive
// priority; after SortByRank it is the point's index.
type Point struct {
	X    float32
	Y    float32
	Rank float32
}

// Stats describes the last Generate call.
type Stats struct {
	Nodes     int // tile instances intersecting the viewport
	MaxLevel  int // deepest level visited
	Points    int
	Truncated bool
}

type node struct {
	id    tile.ID
	x, y  float64
	level int
}

// Context is not safe for concurrent use. The slice returned by Generate aliases
// the Context's buffer and is overwritten by the next call.
type Context struct {
	set      *tileset.Set
	field    *density.Field
	logger   *slog.Logger
	maxLevel int

	points []Point
	stack  []node
	stats  Stats
}

// Option configures a Context in New and Create.
type Option func(*Context)

// WithLogger sets the logger for load and generation messages. The default
// logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) { c.logger = logger }
}

// WithMaxLevel limits recursion to the given subdivision level.
func WithMaxLevel(level int) Option {
	return func(c *Context) { c.maxLevel = level }
}

// WithDensity attaches a density field at construction.
func WithDensity(field *density.Field) Option {
	return func(c *Context) { c.field = field }
}

// New creates a Context that can hold up to maxPoints points per Generate call.
// The set is shared and must not be modified while the Context is in use.
func New(set *tileset.Set, maxPoints int, opts ...Option) *Context {
	c := &Context{
		set:      set,
		logger:   slog.New(slog.DiscardHandler),
		maxLevel: DefaultMaxLevel,
		points:   make([]Point, 0, maxPoints),
		stack:    make([]node, 0, 64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create loads a tileset file and wraps it in a new Context.
func Create(tilesetPath string, maxPoints int, opts ...Option) (*Context, error) {
	set, err := tileset.LoadFile(tilesetPath)
	if err != nil {
		return nil, err
	}
	c := New(set, maxPoints, opts...)
	c.logger.Info("bluenoise: tileset loaded", "path", tilesetPath,
		"tiles", set.Len(), "subtiles", set.SubtilesPerAxis(), "subdivisions", set.SubdivisionCount())
	return c, nil
}

// Close releases the output buffer and the references to the tileset and density.
// The Context must not be used afterwards.
func (c *Context) Close() {
	c.set = nil
	c.field = nil
	c.points = nil
	c.stack = nil
}

func (c *Context) Tileset() *tileset.Set { return c.set }

func (c *Context) MaxPoints() int { return cap(c.points) }

func (c *Context) Stats() Stats { return c.stats }

// Density returns the attached field, or nil for uniform density.
func (c *Context) Density() *density.Field { return c.field }

// SetDensity replaces the density field; nil restores uniform density.
func (c *Context) SetDensity(field *density.Field) {
	c.field = field
}

// SetDensityFromGray attaches a field built with density.FromGray.
func (c *Context) SetDensityFromGray(pixels []byte, width, height, bytesPerPixel int) {
	c.field = density.FromGray(pixels, width, height, bytesPerPixel)
}

// SetDensityFromColorKey attaches a mask built with density.FromColorKey.
// On error the previous field is kept.
func (c *Context) SetDensityFromColorKey(pixels []byte, width, height, bytesPerPixel int, background uint32, invert bool) error {
	field, err := density.FromColorKey(pixels, width, height, bytesPerPixel, background, invert)
	if err != nil {
		return err
	}
	c.field = field
	return nil
}
