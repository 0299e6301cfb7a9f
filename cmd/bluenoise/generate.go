package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/eak1mov/go-bluenoise/bluenoise"
	"github.com/eak1mov/go-bluenoise/pointdb"
	"github.com/eak1mov/go-bluenoise/points"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type generateCmd struct {
	tilesetPath  string
	density      float64
	viewport     viewportFlag
	maxPoints    int
	sort         bool
	outputPath   string
	outputFormat string
	densityFlags densityFlags
}

func (c *generateCmd) Name() string     { return "generate" }
func (c *generateCmd) Synopsis() string { return "generate blue-noise points inside a viewport" }
func (c *generateCmd) Usage() string {
	return "bluenoise generate -t <path> -d <density> -o <path> [-vp l,b,r,t -img <path> -key <color> -sort -of <format>]\n"
}
func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	c.viewport = defaultViewport()
	f.StringVar(&c.tilesetPath, "t", "", "Tileset file path")
	f.Float64Var(&c.density, "d", 1000, "Target point density")
	f.Var(&c.viewport, "vp", "Viewport left,bottom,right,top in [-0.5, 0.5]")
	f.IntVar(&c.maxPoints, "max", 1<<20, "Maximum number of points")
	f.BoolVar(&c.sort, "sort", false, "Sort points by rank")
	f.StringVar(&c.outputPath, "o", "", "Output file path")
	f.StringVar(&c.outputFormat, "of", "", "Output format (bin, sqlite)")
	c.densityFlags.register(f)
}

func (c *generateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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
		log.Printf("warning: %v, output truncated", err)
	} else if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if c.sort {
		bluenoise.SortByRank(pts)
	}
	stats := ctx.Stats()
	log.Printf("generated %d points from %d tiles, max level %d", stats.Points, stats.Nodes, stats.MaxLevel)

	switch deduceFormat(c.outputFormat, c.outputPath) {
	case "bin":
		err = writeBinary(c.outputPath, pts)
	case "sqlite":
		err = c.writeDatabase(pts)
	default:
		log.Printf("invalid output format: %q", c.outputFormat)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func writeBinary(filePath string, pts []bluenoise.Point) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := points.WriteAll(points.FromPoints(pts), writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (c *generateCmd) writeDatabase(pts []bluenoise.Point) error {
	vp := c.viewport
	writer, err := pointdb.NewWriter(
		c.outputPath,
		pointdb.WithMetadata(map[string]string{
			"tileset":  c.tilesetPath,
			"density":  fmt.Sprint(c.density),
			"viewport": vp.String(),
			"field":    c.densityFlags.String(),
			"sorted":   fmt.Sprint(c.sort),
		}),
		pointdb.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}
	defer writer.Close()

	bar := progressbar.New(len(pts))
	for _, p := range pts {
		if err := writer.WritePoint(p); err != nil {
			return err
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	return writer.Finalize()
}
