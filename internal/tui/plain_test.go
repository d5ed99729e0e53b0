package tui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func botGame(seed int64) config.Game {
	cfg := config.Default().ReplaceHumans(player.Impulsive).WithSeed(seed)
	cfg.MaxRounds = 30
	return cfg
}

func TestLinePrompterRepeatsUntilAnswered(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("maybe\nYes\n"), &out)

	var a answers
	p.PromptPurchase(context.Background(), request(), a.resume)

	assert.Equal(t, []bool{true}, a.got)
	assert.Equal(t, 2, strings.Count(out.String(), "buy cell 3 for $100"))
	assert.Contains(t, out.String(), "Please answer y or n.")
}

func TestLinePrompterTreatsEndOfInputAsNo(t *testing.T) {
	var out bytes.Buffer
	var a answers
	NewLinePrompter(strings.NewReader(""), &out).PromptPurchase(context.Background(), request(), a.resume)
	assert.Equal(t, []bool{false}, a.got)
}

func TestLinePrompterAcceptsFinalLineWithoutNewline(t *testing.T) {
	var a answers
	NewLinePrompter(strings.NewReader("n"), &bytes.Buffer{}).PromptPurchase(context.Background(), request(), a.resume)
	assert.Equal(t, []bool{false}, a.got)
}

func TestLinePrompterStopsWhenCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewLinePrompter(pr, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	var a answers
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.PromptPurchase(ctx, request(), a.resume)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("prompt did not return after cancellation")
	}
	assert.Empty(t, a.got)

	// A line typed after the abandoned prompt answers the next one.
	go func() { _, _ = pw.Write([]byte("y\n")) }()
	var next answers
	p.PromptPurchase(context.Background(), request(), next.resume)
	assert.Equal(t, []bool{true}, next.got)
}

type cancelOnWrite struct {
	cancel context.CancelFunc
	buf    bytes.Buffer
}

func (w *cancelOnWrite) Write(b []byte) (int, error) {
	if bytes.Contains(b, []byte("buy cell")) {
		w.cancel()
	}
	return w.buf.Write(b)
}

func TestPlainRunCancelledAtPrompt(t *testing.T) {
	cfg := config.Default().WithSeed(11)
	cfg.Board = []board.Spec{{Price: 50, Rent: 5}, {Price: 50, Rent: 5}, {Price: 50, Rent: 5}}
	cfg.Players = []config.PlayerSpec{
		{Name: "You", Strategy: player.Human},
		{Name: "Bot", Strategy: player.Cautious},
	}
	e, err := game.New(cfg, game.WithLogger(quietLogger()))
	require.NoError(t, err)

	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &cancelOnWrite{cancel: cancel}

	res, err := e.Run(ctx, NewLinePrompter(pr, out))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, game.Cancelled, res.Reason)
	assert.Equal(t, game.Ended, e.State())
	assert.Contains(t, out.buf.String(), "You, buy cell")
}

func TestPrinterNarratesWholeGame(t *testing.T) {
	e, err := game.New(botGame(3), game.WithLogger(quietLogger()))
	require.NoError(t, err)

	var out bytes.Buffer
	e.EventBus().Subscribe(NewPrinter(&out, e, false))
	res, err := e.Run(context.Background(), nil)
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Turn order: "))
	assert.Contains(t, text, "Round 1: ")
	assert.Contains(t, text, "rolls ")
	assert.Contains(t, text, "Game over after")
	assert.Contains(t, text, res.Reason.String())
}

func TestNarratorDescribesElimination(t *testing.T) {
	n := NewNarrator([]game.PlayerView{{ID: 1, Name: "Alice"}}, false)
	line := n.Describe(game.EliminationEvent{Player: 1, Round: 7, Balance: -20, Released: []int{2, 5}})
	assert.Equal(t, "Alice is eliminated in round 7 with $-20; cells [2 5] are back on the market", line)
	assert.Equal(t, "player 9 passes on cell 1", n.Describe(game.PurchaseDeclineEvent{Player: 9, Cell: 1}))
}
