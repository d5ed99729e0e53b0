package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func botConfig() config.Game {
	return config.Default().ReplaceHumans(player.Random)
}

func TestRunPlaysEveryGame(t *testing.T) {
	report, err := New(Config{
		Game:    botConfig(),
		Games:   12,
		Workers: 3,
		Seed:    100,
		Timeout: 10 * time.Second,
		Clock:   quartz.NewMock(t),
	}).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Results, 12)
	for i, res := range report.Results {
		require.NotNil(t, res)
		assert.Equal(t, int64(100+i), res.Seed)
		assert.Contains(t, []game.EndReason{game.LastPlayerStanding, game.RoundLimit}, res.Reason)
	}
	assert.Equal(t, 12, report.Stats.Games)
	assert.Zero(t, report.Elapsed, "mock clock does not move")
	assert.NoError(t, report.Stats.Validate())
}

func TestRunIsReproducible(t *testing.T) {
	run := func(workers int) []int {
		report, err := New(Config{Game: botConfig(), Games: 8, Workers: workers, Seed: 7}).Run(context.Background())
		require.NoError(t, err)
		rounds := make([]int, len(report.Results))
		for i, res := range report.Results {
			rounds[i] = res.Rounds
		}
		return rounds
	}
	assert.Equal(t, run(1), run(4))
}

func TestRunRejectsHumans(t *testing.T) {
	_, err := New(Config{Game: config.Default(), Games: 1}).Run(context.Background())
	assert.ErrorIs(t, err, ErrHumanPlayer)
}

func TestRunRejectsInvalidInput(t *testing.T) {
	_, err := New(Config{Game: botConfig()}).Run(context.Background())
	assert.Error(t, err)

	cfg := botConfig()
	cfg.MaxRounds = 0
	_, err = New(Config{Game: cfg, Games: 1}).Run(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Game: botConfig(), Games: 4}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
