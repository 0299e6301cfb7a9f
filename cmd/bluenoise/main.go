package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

var verbose = flag.Bool("v", false, "Log debug messages")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&infoCmd{}, "")
	subcommands.Register(&generateCmd{}, "")
	subcommands.Register(&renderCmd{}, "")
	subcommands.Register(&pyramidCmd{}, "")

	flag.Parse()
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	os.Exit(int(subcommands.Execute(context.Background())))
}
