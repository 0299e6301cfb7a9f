package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/eak1mov/go-bluenoise/bluenoise"
	"github.com/eak1mov/go-bluenoise/xyz"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type pyramidCmd struct {
	tilesetPath  string
	density      float64
	maxZoom      int
	maxPoints    int
	outputPath   string
	densityFlags densityFlags
}

func (c *pyramidCmd) Name() string     { return "pyramid" }
func (c *pyramidCmd) Synopsis() string { return "write a zoom pyramid of point tiles" }
func (c *pyramidCmd) Usage() string {
	return "bluenoise pyramid -t <path> -d <density> -z <zoom> -o <pattern> [-img <path>]\n"
}
func (c *pyramidCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tilesetPath, "t", "", "Tileset file path")
	f.Float64Var(&c.density, "d", 1000, "Target point density per tile")
	f.IntVar(&c.maxZoom, "z", 4, "Maximum zoom level")
	f.IntVar(&c.maxPoints, "max", 1<<20, "Maximum number of points per tile")
	f.StringVar(&c.outputPath, "o", "", "Output file pattern (e.g. points/{z}/{x}/{y}.bin)")
	c.densityFlags.register(f)
}

func (c *pyramidCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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

	writer, err := xyz.NewWriter(c.outputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	bar := progressbar.New(xyz.TileCount(c.maxZoom))
	err = xyz.Build(ctx, writer, float32(c.density), c.maxZoom, func(xyz.TileID) {
		bar.Add(1)
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
