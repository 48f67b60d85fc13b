package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"V" help:"Show version"`
	Verbose bool             `short:"v" help:"Verbose logging"`

	Simulate   SimulateCmd   `cmd:"" help:"Simulate hands between built-in agents"`
	Tournament TournamentCmd `cmd:"" help:"Run single-table tournaments"`
	Train      TrainCmd      `cmd:"" help:"Train a CFR strategy tree"`
	Odds       OddsCmd       `cmd:"" help:"Estimate showdown equity for a hand"`
}

func (c *CLI) logger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if c.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-arena"),
		kong.Description("Texas Hold'em simulation engine with CFR training"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
