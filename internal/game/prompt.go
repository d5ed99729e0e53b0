package game

import (
	"context"
	"sync/atomic"

	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/player"
)

// PurchaseRequest is what a purchase prompt shows a human player.
type PurchaseRequest struct {
	GameID  string
	Player  player.ID
	Name    string
	Color   string
	Cell    board.Cell
	Balance int
}

// Affordable reports whether buying keeps the balance at or above zero.
func (r PurchaseRequest) Affordable() bool {
	return r.Balance >= r.Cell.Price
}

// Resume completes a suspended turn. It must be invoked exactly once; later
// calls return ErrDecisionResolved.
type Resume func(buy bool) error

// Prompter presents a purchase to a human and eventually calls resume.
// It may call resume before returning or later from another goroutine.
type Prompter interface {
	PromptPurchase(ctx context.Context, req PurchaseRequest, resume Resume)
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func(ctx context.Context, req PurchaseRequest, resume Resume)

func (f PromptFunc) PromptPurchase(ctx context.Context, req PurchaseRequest, resume Resume) {
	f(ctx, req, resume)
}

// PendingDecision is the token for a turn suspended on a human answer.
type PendingDecision struct {
	token    uint64
	request  PurchaseRequest
	offer    player.Offer
	outcome  TurnOutcome
	resolved bool        // engine goroutine only
	answered atomic.Bool // set by the continuation
}

// Request describes the purchase awaiting an answer.
func (p *PendingDecision) Request() PurchaseRequest {
	return p.request
}

// Player is the player whose turn is suspended.
func (p *PendingDecision) Player() player.ID {
	return p.request.Player
}

// continuation returns a Resume that delivers at most one answer on the
// returned channel.
func (p *PendingDecision) continuation() (Resume, <-chan bool) {
	answers := make(chan bool, 1)
	return func(buy bool) error {
		if !p.answered.CompareAndSwap(false, true) {
			return ErrDecisionResolved
		}
		answers <- buy
		return nil
	}, answers
}
