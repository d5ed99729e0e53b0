// Package simulator plays batches of automated games in parallel and
// aggregates their results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/statistics"
)

// ErrHumanPlayer is returned when the roster needs someone at the keyboard.
var ErrHumanPlayer = errors.New("simulator: roster contains a human player")

// Config holds configuration for running simulations.
type Config struct {
	Game    config.Game
	Games   int
	Workers int           // defaults to GOMAXPROCS
	Seed    int64         // game i is seeded with Seed+i
	Timeout time.Duration // per game; zero means no limit
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Report is the outcome of a batch.
type Report struct {
	Seed    int64                  `json:"seed"`
	Games   int                    `json:"games"`
	Elapsed time.Duration          `json:"elapsed"`
	Results []*game.Result         `json:"results"`
	Stats   *statistics.Statistics `json:"-"`
}

// Simulator runs game simulations.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration.
func New(cfg Config) *Simulator {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Simulator{config: cfg}
}

// Run plays every game and returns the results in seed order. The first
// failing game cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("simulator: games must be positive, got %d", s.config.Games)
	}
	if s.config.Game.HasHuman() {
		return nil, ErrHumanPlayer
	}
	if err := s.config.Game.Validate(); err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	start := s.config.Clock.Now()
	results := make([]*game.Result, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			res, err := s.playGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = res
			logger.Debug("Game finished", "game", i+1, "seed", seed, "rounds", res.Rounds, "reason", res.Reason, "winner", res.WinnerName)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, res := range results {
		stats.Add(res)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report := &Report{
		Seed:    s.config.Seed,
		Games:   s.config.Games,
		Elapsed: s.config.Clock.Since(start),
		Results: results,
		Stats:   stats,
	}
	logger.Info("Simulation complete", "games", report.Games, "elapsed", report.Elapsed, "meanRounds", stats.Mean())
	return report, nil
}

// playGame runs one seeded game with timeout protection.
func (s *Simulator) playGame(ctx context.Context, seed int64) (*game.Result, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	engine, err := game.New(s.config.Game.WithSeed(seed),
		game.WithLogger(s.config.Logger),
		game.WithClock(s.config.Clock))
	if err != nil {
		return nil, err
	}
	res, err := engine.Run(ctx, nil)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("timed out after %v at round %d: %w", s.config.Timeout, engine.Round(), err)
	}
	return res, err
}
