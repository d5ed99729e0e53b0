package game

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invariantChecker watches a whole game through the event bus.
type invariantChecker struct {
	t          *testing.T
	e          *Engine
	lastRound  int
	eliminated map[player.ID]bool
	bonuses    int
	startTotal int
}

func (c *invariantChecker) OnEvent(event GameEvent) {
	switch ev := event.(type) {
	case TurnEndEvent:
		out := ev.Outcome
		assert.Equal(c.t, c.lastRound+1, out.Round, "round grows by exactly one per turn")
		c.lastRound = out.Round
		c.bonuses += out.Bonus

		total := c.e.bank.Total()
		assert.Equal(c.t, c.startTotal+c.bonuses, total, "money only enters as lap bonuses")

		for _, cell := range c.e.Cells() {
			if cell.Owned() {
				assert.False(c.t, c.eliminated[cell.Owner], "eliminated player still owns cell %d", cell.Index)
			}
		}
		if cur := c.e.Current(); cur != player.None {
			assert.False(c.t, c.eliminated[cur], "current player is eliminated")
		}
	case EliminationEvent:
		c.eliminated[ev.Player] = true
	}
}

func TestInvariantsHoldAcrossSeeds(t *testing.T) {
	for seed := range int64(25) {
		cfg := config.Default().ReplaceHumans(player.Random).WithSeed(seed)
		cfg.MaxRounds = 400

		var hookRounds []int
		bus := NewEventBus()
		e, err := New(cfg,
			WithLogger(quietLogger()),
			WithClock(quartz.NewMock(t)),
			WithEventBus(bus),
			WithBeforeTurn(func(s TurnState) { hookRounds = append(hookRounds, s.Round) }))
		require.NoError(t, err)

		checker := &invariantChecker{t: t, e: e, eliminated: map[player.ID]bool{}, startTotal: e.bank.Total()}
		bus.Subscribe(checker)

		result, err := e.Run(context.Background(), nil)
		require.NoError(t, err, "seed %d", seed)

		require.Len(t, hookRounds, result.Rounds, "hook runs once per turn")
		for i, r := range hookRounds {
			assert.Equal(t, i, r)
		}
		assert.Equal(t, result.Rounds, checker.lastRound)

		if result.Reason == LastPlayerStanding {
			assert.Len(t, e.Order(), 1)
			assert.Equal(t, e.Order()[0], result.Winner)
		} else {
			assert.Equal(t, RoundLimit, result.Reason)
			assert.Equal(t, cfg.MaxRounds, result.Rounds)
		}
		assert.Len(t, result.Standings, len(cfg.Players))
	}
}

func TestSameSeedReplaysExactly(t *testing.T) {
	play := func() *Result {
		cfg := config.Default().ReplaceHumans(player.Random).WithSeed(1234)
		e, err := New(cfg, WithLogger(quietLogger()), WithGameID("replay"))
		require.NoError(t, err)
		res, err := e.Run(context.Background(), nil)
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, play(), play())
}
