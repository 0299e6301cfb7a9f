package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/eak1mov/go-bluenoise/tile"
	"github.com/eak1mov/go-bluenoise/tileset"
	"github.com/google/subcommands"
)

type infoCmd struct {
	tilesetPath string
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "print tileset summary and check tile references" }
func (c *infoCmd) Usage() string {
	return "bluenoise info -t <path>\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tilesetPath, "t", "", "Tileset file path (.gz is decompressed)")
}

func (c *infoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	set, err := tileset.LoadFile(c.tilesetPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	pointCount := 0
	for range tile.IterPoints(set) {
		pointCount++
	}
	subPointCount := 0
	for _, t := range tile.IterTiles(set) {
		subPointCount += len(t.SubPoints)
	}

	fmt.Printf("tiles:            %d\n", set.Len())
	fmt.Printf("subtiles:         %dx%d\n", set.SubtilesPerAxis(), set.SubtilesPerAxis())
	fmt.Printf("subdivisions:     %d\n", set.SubdivisionCount())
	fmt.Printf("points:           %d (%.1f per tile)\n", pointCount, float64(pointCount)/float64(set.Len()))
	fmt.Printf("subdivision pts:  %d\n", subPointCount)

	if err := set.Validate(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	fmt.Println("references:       ok")

	return subcommands.ExitSuccess
}
