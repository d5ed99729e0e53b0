package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lox/landlord/internal/fileutil"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/tui"
)

// PlayCmd plays one game, with a human at the keyboard if the roster has one.
type PlayCmd struct {
	Config    string `short:"c" default:"landlord.hcl" type:"path" help:"Game file (defaults apply when it does not exist)"`
	Seed      *int64 `help:"Deterministic seed for dice and random strategies"`
	Debug     bool   `help:"Enable debug logging"`
	LogFile   string `type:"path" help:"Write logs to this file (the full-screen UI logs to landlord.log)"`
	Plain     bool   `help:"Use line-based prompts instead of the full-screen UI"`
	AutoHuman string `help:"Replace human players with this strategy (impulsive, demanding, cautious, random)"`
	NoColor   bool   `help:"Disable colour output"`
	Output    string `short:"o" type:"path" help:"Write the final result as JSON"`
}

func (c *PlayCmd) Run() error {
	if c.NoColor {
		tui.DisableColor()
	}

	cfg, err := loadGame(c.Config, c.Seed, c.AutoHuman)
	if err != nil {
		return err
	}
	fullScreen := cfg.HasHuman() && !c.Plain

	logPath := c.LogFile
	if logPath == "" && fullScreen {
		logPath = "landlord.log"
	}
	logger, closeLog, err := setupLogger(c.Debug, logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := game.New(cfg,
		game.WithLogger(logger),
		game.WithBeforeTurn(func(s game.TurnState) {
			logger.Debug("Turn", "round", s.Round+1, "player", s.Name, "position", s.Position, "balance", s.Balance, "remaining", s.Remaining)
		}))
	if err != nil {
		return err
	}
	logger.Info("Starting game", "game", engine.ID(), "seed", engine.Seed(), "players", len(cfg.Players))

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	var result *game.Result
	if fullScreen {
		result, err = tui.Play(ctx, engine, logger)
	} else {
		engine.EventBus().Subscribe(tui.NewPrinter(os.Stdout, engine, !c.NoColor))
		result, err = engine.Run(ctx, tui.NewLinePrompter(os.Stdin, os.Stdout))
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("Game cancelled", "round", engine.Round())
		err = nil
	}
	if err != nil {
		return err
	}

	if result != nil {
		fmt.Println()
		fmt.Println(tui.RenderStandings(result))
		if c.Output != "" {
			if err := fileutil.WriteJSON(c.Output, result); err != nil {
				return err
			}
			logger.Info("Wrote result", "path", c.Output)
		}
	}
	return nil
}

