package main

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/landlord/internal/fileutil"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/randutil"
	"github.com/lox/landlord/internal/simulator"
)

// SimulateCmd plays many automated games in parallel.
type SimulateCmd struct {
	Config    string        `short:"c" default:"landlord.hcl" type:"path" help:"Game file (defaults apply when it does not exist)"`
	Games     int           `short:"n" default:"1000" help:"Number of games to play"`
	Workers   int           `short:"w" help:"Games played in parallel (defaults to GOMAXPROCS)"`
	Seed      *int64        `help:"Seed for the first game; game i uses seed+i"`
	Timeout   time.Duration `default:"10s" help:"Give up on a single game after this long"`
	AutoHuman string        `default:"random" help:"Strategy that stands in for human players"`
	Debug     bool          `help:"Enable debug logging"`
	Output    string        `short:"o" type:"path" help:"Write every game result as JSON"`
}

func (c *SimulateCmd) Run() error {
	logger, closeLog, err := setupLogger(c.Debug, "")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadGame(c.Config, nil, c.AutoHuman)
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	seed := randutil.SeedFromClock(clock)
	switch {
	case c.Seed != nil:
		seed = *c.Seed
	case cfg.Seed != nil:
		seed = *cfg.Seed
	}
	logger.Info("Running simulation", "games", c.Games, "seed", seed, "timeout", c.Timeout)

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	report, err := simulator.New(simulator.Config{
		Game:    cfg,
		Games:   c.Games,
		Workers: c.Workers,
		Seed:    seed,
		Timeout: c.Timeout,
		Logger:  logger,
		Clock:   clock,
	}).Run(ctx)
	if err != nil {
		return err
	}

	printSummary(report)
	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, report); err != nil {
			return err
		}
		logger.Info("Wrote results", "path", c.Output)
	}
	return nil
}

func printSummary(report *simulator.Report) {
	stats := report.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== %d GAMES (seeds %d..%d) in %v ===\n",
		report.Games, report.Seed, report.Seed+int64(report.Games)-1, report.Elapsed.Round(time.Millisecond))

	fmt.Printf("\n=== GAME LENGTH ===\n")
	fmt.Printf("Mean: %.1f rounds\n", stats.Mean())
	fmt.Printf("Median: %.1f rounds\n", stats.Median())
	fmt.Printf("Std Dev: %.1f rounds\n", stats.StdDev())
	fmt.Printf("95%% CI: [%.1f, %.1f] rounds\n", low, high)
	fmt.Printf("Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Printf("\n=== ENDINGS ===\n")
	for _, reason := range []game.EndReason{game.LastPlayerStanding, game.RoundLimit, game.Cancelled} {
		if n := stats.Endings[reason]; n > 0 {
			fmt.Printf("%s: %d (%.1f%%)\n", reason, n, pct(n, stats.Games))
		}
	}

	fmt.Printf("\n=== STRATEGIES ===\n")
	for _, st := range stats.Ranking() {
		fmt.Printf("%-16s wins %5d (%5.1f%%)  eliminated %5d  mean balance %8.1f\n",
			st.Strategy, st.Wins, st.WinRate()*100, st.Eliminations, st.MeanBalance())
	}
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
