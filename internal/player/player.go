// Package player defines the roster members and their purchase strategies.
package player

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ID identifies a player within one game's roster. The zero value means
// "nobody" and is what an unowned cell carries.
type ID int

// None is the absent player.
const None ID = 0

// Player is one member of the roster.
type Player struct {
	ID         ID
	Name       string
	Color      string // hex, e.g. "#ff0000"
	Strategy   Strategy
	Position   int
	Eliminated bool
}

// New creates a player at the start cell.
func New(id ID, name string, strategy Strategy) *Player {
	if id == None {
		panic("player id must be non-zero")
	}
	if strategy == nil {
		panic("player strategy is required")
	}
	return &Player{ID: id, Name: name, Strategy: strategy}
}

// Advance moves the player steps cells forward on a board of boardLen cells,
// wrapping around. It reports whether a lap was completed.
func (p *Player) Advance(steps, boardLen int) (from, to int, lapped bool) {
	if boardLen <= 0 {
		panic("board length must be positive")
	}
	from = p.Position
	raw := p.Position + steps
	p.Position = raw % boardLen
	return from, p.Position, raw >= boardLen
}

// Kind is the strategy variant of this player.
func (p *Player) Kind() Kind {
	return p.Strategy.Kind()
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Strategy)
}

// Palette spreads n colours evenly around the hue wheel at full saturation
// and value.
func Palette(n int) []string {
	colors := make([]string, n)
	for i := range n {
		colors[i] = colorful.Hsv(360*float64(i)/float64(n), 1, 1).Hex()
	}
	return colors
}
