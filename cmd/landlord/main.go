package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"withargs" help:"Play a game in the terminal"`
	Simulate    SimulateCmd      `cmd:"" help:"Play many automated games and report strategy statistics"`
	CheckConfig CheckConfigCmd   `cmd:"check-config" help:"Validate a game file and print the resulting setup"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("landlord"),
		kong.Description("A property trading board game for bots and humans"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
