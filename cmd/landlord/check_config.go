package main

import (
	"fmt"

	"github.com/lox/landlord/internal/config"
)

// CheckConfigCmd loads a game file and prints what it resolves to.
type CheckConfigCmd struct {
	Config string `arg:"" optional:"" default:"landlord.hcl" type:"path" help:"Game file to check"`
}

func (c *CheckConfigCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if cfg, err = config.ApplyEnv(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Printf("%s is valid\n", c.Config)
	fmt.Printf("  board:            %d cells\n", len(cfg.Board))
	fmt.Printf("  dice:             %dd%d\n", cfg.Dice.Count, cfg.Dice.Sides)
	fmt.Printf("  starting balance: %d\n", cfg.StartingBalance)
	fmt.Printf("  lap bonus:        %d\n", cfg.LapBonus)
	fmt.Printf("  max rounds:       %d\n", cfg.MaxRounds)
	if cfg.Seed != nil {
		fmt.Printf("  seed:             %d\n", *cfg.Seed)
	}
	fmt.Printf("  players:\n")
	for _, p := range cfg.Players {
		if p.Threshold != 0 {
			fmt.Printf("    %-12s %s (threshold %d)\n", p.Name, p.Strategy, p.Threshold)
		} else {
			fmt.Printf("    %-12s %s\n", p.Name, p.Strategy)
		}
	}
	return nil
}
