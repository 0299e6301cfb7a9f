package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"

	"github.com/eak1mov/go-bluenoise/bluenoise"
	"github.com/gogpu/gg"
	"github.com/google/subcommands"
)

type renderCmd struct {
	tilesetPath  string
	density      float64
	viewport     viewportFlag
	maxPoints    int
	size         int
	radius       float64
	outputPath   string
	densityFlags densityFlags
}

func (c *renderCmd) Name() string     { return "render" }
func (c *renderCmd) Synopsis() string { return "stipple a density image into a PNG" }
func (c *renderCmd) Usage() string {
	return "bluenoise render -t <path> -d <density> -o <path.png> [-img <path> -vp l,b,r,t -size <pixels> -radius <pixels>]\n"
}
func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	c.viewport = defaultViewport()
	f.StringVar(&c.tilesetPath, "t", "", "Tileset file path")
	f.Float64Var(&c.density, "d", 20000, "Target point density")
	f.Var(&c.viewport, "vp", "Viewport left,bottom,right,top in [-0.5, 0.5]")
	f.IntVar(&c.maxPoints, "max", 1<<20, "Maximum number of points")
	f.IntVar(&c.size, "px", 1024, "Output image size in pixels")
	f.Float64Var(&c.radius, "radius", 1.5, "Dot radius in pixels")
	f.StringVar(&c.outputPath, "o", "", "Output PNG path")
	c.densityFlags.register(f)
}

func (c *renderCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	ctx, err := bluenoise.Create(c.tilesetPath, c.maxPoints, bluenoise.WithLogger(slog.Default()))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer ctx.Close()

	if err := c.densityFlags.apply(ctx); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	vp := c.viewport
	pts, err := ctx.Generate(float32(c.density), vp[0], vp[1], vp[2], vp[3])
	if errors.Is(err, bluenoise.ErrCapacityExceeded) {
		log.Printf("warning: %v, image is incomplete", err)
	} else if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := c.render(pts); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	log.Printf("rendered %d points to %v", len(pts), c.outputPath)

	return subcommands.ExitSuccess
}

// render maps the viewport onto a square canvas, y pointing up.
func (c *renderCmd) render(pts []bluenoise.Point) error {
	dc := gg.NewContext(c.size, c.size)
	defer dc.Close()

	dc.ClearWithColor(gg.White)
	dc.SetRGB(0, 0, 0)

	vp := c.viewport
	scaleX := float64(c.size) / float64(vp[2]-vp[0])
	scaleY := float64(c.size) / float64(vp[3]-vp[1])
	for _, p := range pts {
		x := float64(p.X-vp[0]) * scaleX
		y := float64(vp[3]-p.Y) * scaleY
		dc.DrawCircle(x, y, c.radius)
	}
	if err := dc.Fill(); err != nil {
		return err
	}

	return dc.SavePNG(c.outputPath)
}
