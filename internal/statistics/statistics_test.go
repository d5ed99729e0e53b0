package statistics

import (
	"testing"

	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(rounds int, reason game.EndReason, winner player.ID) *game.Result {
	return &game.Result{
		Reason: reason,
		Rounds: rounds,
		Winner: winner,
		Standings: []game.Standing{
			{Player: 1, Strategy: "impulsive", Balance: 500},
			{Player: 2, Strategy: "cautious(80)", Balance: -20, Eliminated: true},
		},
	}
}

func TestEmpty(t *testing.T) {
	var s Statistics
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.9))
	assert.Empty(t, s.Ranking())
	assert.Error(t, s.Validate())
}

func TestAddTalliesGames(t *testing.T) {
	var s Statistics
	s.Add(result(10, game.LastPlayerStanding, 1))
	s.Add(result(20, game.RoundLimit, 1))
	s.Add(result(30, game.RoundLimit, 2))
	require.NoError(t, s.Validate())

	assert.Equal(t, 3, s.Games)
	assert.InDelta(t, 20.0, s.Mean(), 1e-9)
	assert.InDelta(t, 100.0, s.Variance(), 1e-9)
	assert.InDelta(t, 10.0, s.StdDev(), 1e-9)
	assert.InDelta(t, 20.0, s.Median(), 1e-9)
	assert.InDelta(t, 25.0, s.Percentile(0.75), 1e-9)
	assert.Equal(t, 1, s.Endings[game.LastPlayerStanding])
	assert.Equal(t, 2, s.Endings[game.RoundLimit])

	low, high := s.ConfidenceInterval95()
	assert.Less(t, low, s.Mean())
	assert.Greater(t, high, s.Mean())

	ranking := s.Ranking()
	require.Len(t, ranking, 2)
	assert.Equal(t, "impulsive", ranking[0].Strategy)
	assert.Equal(t, 2, ranking[0].Wins)
	assert.InDelta(t, 2.0/3.0, ranking[0].WinRate(), 1e-9)
	assert.InDelta(t, 500.0, ranking[0].MeanBalance(), 1e-9)
	assert.Equal(t, 3, ranking[1].Eliminations)
}

func TestCancelledGamesHaveNoWinner(t *testing.T) {
	var s Statistics
	s.Add(result(3, game.Cancelled, player.None))
	require.NoError(t, s.Validate())
	assert.Equal(t, 1, s.NoWinner)
}
