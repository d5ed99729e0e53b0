// Package rotation tracks whose turn it is among the players still in the game.
package rotation

import (
	"fmt"
	"slices"

	"github.com/lox/landlord/internal/player"
)

// Rotation is a circular pointer over the live play order.
type Rotation struct {
	order   []player.ID
	current int
}

// New wraps a resolved play order; the first player is current.
func New(order []player.ID) *Rotation {
	return &Rotation{order: slices.Clone(order)}
}

// Empty reports whether every player has been removed.
func (r *Rotation) Empty() bool {
	return len(r.order) == 0
}

// Current returns the player whose turn it is, or player.None when empty.
func (r *Rotation) Current() player.ID {
	if r.Empty() {
		return player.None
	}
	return r.order[r.current]
}

// Advance moves the pointer to the next player and returns them.
func (r *Rotation) Advance() player.ID {
	if r.Empty() {
		return player.None
	}
	r.current = (r.current + 1) % len(r.order)
	return r.order[r.current]
}

// Eliminate removes id. If id was current, the next remaining player becomes
// current.
func (r *Rotation) Eliminate(id player.ID) error {
	i := slices.Index(r.order, id)
	if i < 0 {
		return fmt.Errorf("rotation: player %d is not in the rotation", id)
	}
	r.order = slices.Delete(r.order, i, i+1)
	switch {
	case len(r.order) == 0:
		r.current = 0
	case i < r.current:
		r.current--
	case i == r.current:
		r.current %= len(r.order)
	}
	return nil
}

// Contains reports whether id is still in the rotation.
func (r *Rotation) Contains(id player.ID) bool {
	return slices.Contains(r.order, id)
}

// Remaining returns the live players in play order.
func (r *Rotation) Remaining() []player.ID {
	return slices.Clone(r.order)
}

// Len is the number of live players.
func (r *Rotation) Len() int {
	return len(r.order)
}

// OnlyOneRemains reports whether the game has a sole survivor.
func (r *Rotation) OnlyOneRemains() bool {
	return len(r.order) == 1
}

// Winners returns the players still in the rotation, in play order.
func (r *Rotation) Winners() []player.ID {
	return r.Remaining()
}

// Upcoming lists players in the order repeated Advance calls would reach
// them, starting with the player after current and ending with current.
// It does not move the pointer.
func (r *Rotation) Upcoming() []player.ID {
	n := len(r.order)
	out := make([]player.ID, 0, n)
	for step := 1; step <= n; step++ {
		out = append(out, r.order[(r.current+step)%n])
	}
	return out
}
