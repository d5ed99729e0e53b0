// Package config describes a game before it starts: the board, the dice,
// the money rules and the roster. A Game is built once and never mutated by
// the engine.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/dice"
	"github.com/lox/landlord/internal/player"
)

// ErrInvalid wraps every configuration problem found by Validate.
var ErrInvalid = errors.New("invalid game configuration")

// PlayerSpec describes one roster member.
type PlayerSpec struct {
	Name      string
	Strategy  player.Kind
	Threshold int // demanding and cautious only
}

// Game is the complete setup of one game.
type Game struct {
	Board           []board.Spec
	Dice            dice.Options
	LapBonus        int
	StartingBalance int
	MaxRounds       int
	Players         []PlayerSpec
	Seed            *int64 // nil picks a seed at start
}

var defaultLayout = []board.Spec{
	{60, 10}, {60, 12}, {100, 20}, {100, 22}, {120, 25},
	{140, 30}, {140, 32}, {160, 35}, {180, 40}, {180, 42},
	{200, 45}, {220, 50}, {220, 52}, {240, 55}, {260, 60},
	{260, 62}, {280, 65}, {300, 70}, {320, 75}, {350, 85},
}

// Default is the classic five-player game on a twenty cell board.
func Default() Game {
	return Game{
		Board:           slices.Clone(defaultLayout),
		Dice:            dice.Options{Count: 1, Sides: 6},
		LapBonus:        100,
		StartingBalance: 300,
		MaxRounds:       1000,
		Players: []PlayerSpec{
			{Name: "Impulsive", Strategy: player.Impulsive},
			{Name: "Demanding", Strategy: player.Demanding, Threshold: 50},
			{Name: "Cautious", Strategy: player.Cautious, Threshold: 80},
			{Name: "Random", Strategy: player.Random},
			{Name: "You", Strategy: player.Human},
		},
	}
}

// Validate reports every problem at once, wrapped in ErrInvalid.
func (g Game) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if len(g.Board) == 0 {
		add("board layout is empty")
	}
	for i, c := range g.Board {
		if c.Price <= 0 {
			add("cell %d: price must be positive, got %d", i, c.Price)
		}
		if c.Rent < 0 {
			add("cell %d: rent must not be negative, got %d", i, c.Rent)
		}
	}
	if err := g.Dice.Validate(); err != nil {
		problems = append(problems, err)
	}
	if g.MaxRounds <= 0 {
		add("max rounds must be positive, got %d", g.MaxRounds)
	}
	if g.StartingBalance < 0 {
		add("starting balance must not be negative, got %d", g.StartingBalance)
	}
	if g.LapBonus < 0 {
		add("lap bonus must not be negative, got %d", g.LapBonus)
	}
	if len(g.Players) < 2 {
		add("at least 2 players required, got %d", len(g.Players))
	}
	names := make(map[string]bool, len(g.Players))
	for i, p := range g.Players {
		if p.Name == "" {
			add("player %d: name is required", i)
		} else if names[p.Name] {
			add("player %q: duplicate name", p.Name)
		}
		names[p.Name] = true
		if !p.Strategy.Valid() {
			add("player %q: unknown strategy %d", p.Name, int(p.Strategy))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
	}
	return nil
}

// HasHuman reports whether any roster member needs a purchase prompt.
func (g Game) HasHuman() bool {
	return slices.ContainsFunc(g.Players, func(p PlayerSpec) bool {
		return p.Strategy == player.Human
	})
}

// ReplaceHumans returns a copy where human players use kind instead.
func (g Game) ReplaceHumans(kind player.Kind) Game {
	out := g.Clone()
	for i := range out.Players {
		if out.Players[i].Strategy == player.Human {
			out.Players[i].Strategy = kind
		}
	}
	return out
}

// WithSeed returns a copy with the seed fixed.
func (g Game) WithSeed(seed int64) Game {
	out := g.Clone()
	out.Seed = &seed
	return out
}

// Clone deep-copies the slices so the copy can be changed freely.
func (g Game) Clone() Game {
	out := g
	out.Board = slices.Clone(g.Board)
	out.Dice.Weights = slices.Clone(g.Dice.Weights)
	out.Players = slices.Clone(g.Players)
	if g.Seed != nil {
		seed := *g.Seed
		out.Seed = &seed
	}
	return out
}
