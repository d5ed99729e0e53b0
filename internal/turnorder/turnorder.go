// Package turnorder decides the initial play order by rolling dice.
//
// Players are ranked one at a time: every remaining player rolls, the
// highest roll takes the next slot, and players tied for the highest roll
// re-roll among themselves until one is left. Losers of a pass are not
// re-rolled in that pass.
package turnorder

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/landlord/internal/dice"
	"github.com/lox/landlord/internal/player"
)

// ErrUnresolvedTie is returned when a slot is still tied after the pass limit.
var ErrUnresolvedTie = errors.New("turnorder: tie not resolved")

// DefaultMaxPasses bounds the re-rolls spent on a single slot.
const DefaultMaxPasses = 1000

// Pass records one round of rolling over a candidate set.
type Pass struct {
	Slot       int // index in the final order being decided
	Candidates []player.ID
	Rolls      []int // parallel to Candidates
	Leaders    []player.ID
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxPasses overrides DefaultMaxPasses.
func WithMaxPasses(n int) Option {
	return func(r *Resolver) { r.maxPasses = n }
}

// WithPassHook is called after every pass; useful for logging and replay.
func WithPassHook(fn func(Pass)) Option {
	return func(r *Resolver) { r.onPass = fn }
}

// Resolver ranks players using a roller.
type Resolver struct {
	roller    dice.Roller
	maxPasses int
	onPass    func(Pass)
}

// New returns a resolver that rolls with roller.
func New(roller dice.Roller, opts ...Option) *Resolver {
	if roller == nil {
		panic("roller is required for turn order")
	}
	r := &Resolver{roller: roller, maxPasses: DefaultMaxPasses}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxPasses < 1 {
		r.maxPasses = 1
	}
	return r
}

// ResolveOrder returns the players ranked from first to last. The result is
// a permutation of ids.
func (r *Resolver) ResolveOrder(ids []player.ID) ([]player.ID, error) {
	seen := make(map[player.ID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("turnorder: player %d listed twice", id)
		}
		seen[id] = true
	}

	pool := slices.Clone(ids)
	order := make([]player.ID, 0, len(ids))
	for len(pool) > 0 {
		best, err := r.best(len(order), pool)
		if err != nil {
			return nil, err
		}
		order = append(order, best)
		pool = slices.DeleteFunc(pool, func(id player.ID) bool { return id == best })
	}
	return order, nil
}

// best narrows candidates pass by pass until a single leader remains.
func (r *Resolver) best(slot int, pool []player.ID) (player.ID, error) {
	candidates := pool
	for range r.maxPasses {
		if len(candidates) == 1 {
			return candidates[0], nil
		}
		rolls := make([]int, len(candidates))
		var leaders []player.ID
		top := 0
		for i, id := range candidates {
			roll := r.roller.Roll()
			rolls[i] = roll
			switch {
			case i == 0 || roll > top:
				top = roll
				leaders = []player.ID{id}
			case roll == top:
				leaders = append(leaders, id)
			}
		}
		if r.onPass != nil {
			r.onPass(Pass{
				Slot:       slot,
				Candidates: slices.Clone(candidates),
				Rolls:      rolls,
				Leaders:    slices.Clone(leaders),
			})
		}
		candidates = leaders
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return player.None, fmt.Errorf("%w: slot %d still tied between %v after %d passes",
		ErrUnresolvedTie, slot, candidates, r.maxPasses)
}
