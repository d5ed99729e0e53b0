package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/game"
)

// Sender delivers messages to a running program; *tea.Program is one.
type Sender interface {
	Send(msg tea.Msg)
}

// Snapshotter exposes the read-only engine state the UI draws.
type Snapshotter interface {
	Players() []game.PlayerView
	Cells() []board.Cell
}

// EventMsg carries one game event plus the state right after it.
type EventMsg struct {
	Event   game.GameEvent
	Players []game.PlayerView
	Cells   []board.Cell
}

// PromptMsg asks the human at the keyboard for a purchase decision.
type PromptMsg struct {
	Request game.PurchaseRequest
	Resume  game.Resume
}

// DoneMsg reports that the engine has stopped.
type DoneMsg struct {
	Result *game.Result
	Err    error
}

// Bridge forwards engine events and purchase prompts into a bubbletea
// program. Snapshots are taken on the engine goroutine so the model never
// touches the engine.
type Bridge struct {
	send   Sender
	source Snapshotter
}

// NewBridge connects source to the program behind send.
func NewBridge(send Sender, source Snapshotter) *Bridge {
	return &Bridge{send: send, source: source}
}

func (b *Bridge) OnEvent(event game.GameEvent) {
	b.send.Send(EventMsg{
		Event:   event,
		Players: b.source.Players(),
		Cells:   b.source.Cells(),
	})
}

// PromptPurchase hands the decision to the UI and returns at once; the
// model calls resume when a key is pressed.
func (b *Bridge) PromptPurchase(_ context.Context, req game.PurchaseRequest, resume game.Resume) {
	b.send.Send(PromptMsg{Request: req, Resume: resume})
}
