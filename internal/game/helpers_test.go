package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/dice"
	"github.com/lox/landlord/internal/player"
	"github.com/stretchr/testify/require"
)

const (
	alice player.ID = iota + 1
	bob
	carol
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func testConfig(start, bonus, maxRounds int, cells []board.Spec, players ...config.PlayerSpec) config.Game {
	return config.Game{
		Board:           cells,
		Dice:            dice.Options{Count: 1, Sides: 6},
		LapBonus:        bonus,
		StartingBalance: start,
		MaxRounds:       maxRounds,
		Players:         players,
	}
}

func impulsive(name string) config.PlayerSpec {
	return config.PlayerSpec{Name: name, Strategy: player.Impulsive}
}

func never(name string) config.PlayerSpec {
	return config.PlayerSpec{Name: name, Strategy: player.Cautious, Threshold: 0}
}

func human(name string) config.PlayerSpec {
	return config.PlayerSpec{Name: name, Strategy: player.Human}
}

// newTestEngine builds and starts an engine whose dice replay rolls: first
// the turn order rolls, then one roll per turn.
func newTestEngine(t *testing.T, cfg config.Game, rolls []int, opts ...Option) *Engine {
	t.Helper()
	base := []Option{
		WithDice(dice.Scripted(rolls...)),
		WithLogger(quietLogger()),
		WithClock(quartz.NewMock(t)),
		WithGameID("test-game"),
	}
	e, err := New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	require.NoError(t, e.Start())
	return e
}

// playTurn runs one automated turn and fails the test if it suspends.
func playTurn(t *testing.T, e *Engine) *TurnOutcome {
	t.Helper()
	out, pending, err := e.BeginTurn()
	require.NoError(t, err)
	require.Nil(t, pending, "automated turn should not suspend")
	require.NotNil(t, out)
	return out
}

type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.EventType()
	}
	return out
}
