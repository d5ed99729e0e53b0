package turnorder

import (
	"slices"
	"testing"

	"github.com/lox/landlord/internal/dice"
	"github.com/lox/landlord/internal/player"
	"github.com/lox/landlord/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrderIsPermutation(t *testing.T) {
	for seed := range int64(50) {
		d, err := dice.Single(randutil.New(seed), 6)
		require.NoError(t, err)

		ids := []player.ID{1, 2, 3, 4, 5}
		order, err := New(d).ResolveOrder(ids)
		require.NoError(t, err)
		require.Len(t, order, len(ids))

		sorted := slices.Clone(order)
		slices.Sort(sorted)
		assert.Equal(t, ids, sorted, "seed %d", seed)
	}
}

func TestResolveOrderRerollsOnlyTiedPair(t *testing.T) {
	// Pass 1: 1→3, 2→6, 3→6, 4→2 ties players 2 and 3.
	// Pass 2: 2→4, 3→5 gives slot 0 to player 3.
	// Pass 3: 1→1, 2→2, 4→5 gives slot 1 to player 4.
	// Pass 4: 1→3, 2→1 gives slot 2 to player 1; player 2 is last.
	roller := dice.Scripted(3, 6, 6, 2, 4, 5, 1, 2, 5, 3, 1)

	var passes []Pass
	r := New(roller, WithPassHook(func(p Pass) { passes = append(passes, p) }))

	order, err := r.ResolveOrder([]player.ID{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []player.ID{3, 4, 1, 2}, order)

	require.Len(t, passes, 4)
	assert.Equal(t, []player.ID{2, 3}, passes[0].Leaders)
	assert.Equal(t, []player.ID{2, 3}, passes[1].Candidates, "tie-break rolls only the tied players")
	assert.Equal(t, []int{4, 5}, passes[1].Rolls)
	assert.Equal(t, 0, passes[1].Slot)
	assert.Equal(t, []player.ID{1, 2, 4}, passes[2].Candidates)
	assert.Equal(t, 11, roller.Used(), "the last player is placed without rolling")
}

func TestNewMaximumResetsLeaders(t *testing.T) {
	// 5, 5 tie then 6 takes over alone.
	order, err := New(dice.Scripted(5, 5, 6, 1, 2)).ResolveOrder([]player.ID{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, player.ID(3), order[0])
}

func TestEndlessTieFailsInsteadOfHanging(t *testing.T) {
	_, err := New(dice.Scripted(4), WithMaxPasses(20)).ResolveOrder([]player.ID{1, 2})
	assert.ErrorIs(t, err, ErrUnresolvedTie)
}

func TestResolveOrderEdgeCases(t *testing.T) {
	r := New(dice.Scripted(1))

	order, err := r.ResolveOrder(nil)
	require.NoError(t, err)
	assert.Empty(t, order)

	order, err = r.ResolveOrder([]player.ID{7})
	require.NoError(t, err)
	assert.Equal(t, []player.ID{7}, order)

	_, err = r.ResolveOrder([]player.ID{1, 1})
	assert.Error(t, err)
}
