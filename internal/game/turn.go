package game

import (
	"context"
	"fmt"

	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/player"
)

// Action is what happened on the landed cell.
type Action int

const (
	NoAction Action = iota
	Bought
	Declined
	PaidRent
	OwnCell
)

func (a Action) String() string {
	switch a {
	case Bought:
		return "bought"
	case Declined:
		return "declined"
	case PaidRent:
		return "paid_rent"
	case OwnCell:
		return "own_cell"
	default:
		return "none"
	}
}

// TurnOutcome records one completed turn.
type TurnOutcome struct {
	Round      int // value of the round counter after this turn
	Player     player.ID
	Roll       int
	From       int
	To         int
	Lapped     bool
	Bonus      int
	Cell       board.Cell // as it stands after the turn
	Action     Action
	Amount     int       // price paid or rent paid
	PaidTo     player.ID // rent recipient
	Eliminated bool
	Released   []int // cells returned to the market on elimination
}

// BeginTurn plays the current player's turn. It returns either a completed
// outcome or, when a human must decide on a purchase, a pending token that
// has to be passed to ResolveDecision before anything else can happen.
func (e *Engine) BeginTurn() (*TurnOutcome, *PendingDecision, error) {
	switch e.state {
	case Setup:
		return nil, nil, ErrNotStarted
	case Ended:
		return nil, nil, ErrGameOver
	}
	if e.pending != nil {
		return nil, nil, fmt.Errorf("%w: player %d has not answered", ErrTurnInFlight, e.pending.Player())
	}

	p := e.byID[e.rotation.Current()]
	state := e.turnState(p)
	if e.beforeTurn != nil {
		e.beforeTurn(state)
	}
	e.bus.Publish(TurnStartEvent{stamp: e.now(), State: state})

	out := TurnOutcome{Round: e.round + 1, Player: p.ID}
	out.Roll = e.roller.Roll()
	out.From, out.To, out.Lapped = p.Advance(out.Roll, e.board.Len())
	logger := e.logger.With("round", out.Round, "player", p.Name)
	logger.Debug("Rolled", "roll", out.Roll, "from", out.From, "to", out.To)
	e.bus.Publish(MoveEvent{stamp: e.now(), Player: p.ID, Roll: out.Roll, From: out.From, To: out.To, Lapped: out.Lapped})

	if out.Lapped {
		if err := e.bank.Credit(p.ID, e.cfg.LapBonus); err != nil {
			return nil, nil, err
		}
		out.Bonus = e.cfg.LapBonus
		e.bonusPaid += out.Bonus
		logger.Debug("Lap completed", "bonus", out.Bonus)
		e.bus.Publish(LapCompleteEvent{stamp: e.now(), Player: p.ID, Bonus: out.Bonus})
	}

	cell, err := e.board.CellAt(out.To)
	if err != nil {
		return nil, nil, err
	}
	out.Cell = cell

	switch {
	case !cell.Owned():
		offer := player.Offer{Cell: cell.Index, Price: cell.Price, Rent: cell.Rent, Balance: e.bank.BalanceOf(p.ID)}
		switch p.Strategy.DecidePurchase(offer) {
		case player.Buy:
			if err := e.buy(&out); err != nil {
				return nil, nil, err
			}
		case player.Defer:
			return nil, e.suspend(p, offer, out), nil
		default:
			e.decline(&out)
		}
	case cell.Owner == p.ID:
		out.Action = OwnCell
	default:
		rent := e.board.RentDue(cell.Index, p.ID)
		if err := e.bank.Transfer(p.ID, cell.Owner, rent); err != nil {
			return nil, nil, err
		}
		out.Action = PaidRent
		out.Amount = rent
		out.PaidTo = cell.Owner
		logger.Debug("Paid rent", "cell", cell.Index, "to", e.byID[cell.Owner].Name, "amount", rent)
		e.bus.Publish(RentPaidEvent{stamp: e.now(), From: p.ID, To: cell.Owner, Cell: cell.Index, Amount: rent})
	}

	if err := e.completeTurn(&out); err != nil {
		return nil, nil, err
	}
	return &out, nil, nil
}

// ResolveDecision completes the turn suspended by BeginTurn.
func (e *Engine) ResolveDecision(token *PendingDecision, buy bool) (*TurnOutcome, error) {
	if token != nil && token.resolved {
		return nil, ErrDecisionResolved
	}
	if e.pending == nil {
		return nil, ErrNoPendingDecision
	}
	if token != e.pending {
		return nil, ErrStaleDecision
	}

	token.resolved = true
	token.answered.Store(true)
	e.pending = nil

	out := token.outcome
	if buy {
		if err := e.buy(&out); err != nil {
			return nil, err
		}
	} else {
		e.decline(&out)
	}
	if err := e.completeTurn(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *Engine) suspend(p *player.Player, offer player.Offer, out TurnOutcome) *PendingDecision {
	e.nextToken++
	cell := out.Cell
	pd := &PendingDecision{
		token: e.nextToken,
		offer: offer,
		request: PurchaseRequest{
			GameID:  e.id,
			Player:  p.ID,
			Name:    p.Name,
			Color:   p.Color,
			Cell:    cell,
			Balance: offer.Balance,
		},
		outcome: out,
	}
	e.pending = pd
	e.logger.Debug("Waiting for purchase decision", "player", p.Name, "cell", cell.Index, "price", cell.Price)
	e.bus.Publish(PurchasePendingEvent{stamp: e.now(), Request: pd.request})
	return pd
}

func (e *Engine) buy(out *TurnOutcome) error {
	price, err := e.board.Purchase(out.To, out.Player)
	if err != nil {
		return fmt.Errorf("purchase cell %d: %w", out.To, err)
	}
	if err := e.bank.PayBank(out.Player, price); err != nil {
		return err
	}
	out.Action = Bought
	out.Amount = price
	out.Cell, _ = e.board.CellAt(out.To)
	e.logger.Debug("Bought cell", "player", e.byID[out.Player].Name, "cell", out.To, "price", price)
	e.bus.Publish(PurchaseEvent{stamp: e.now(), Player: out.Player, Cell: out.To, Price: price})
	return nil
}

func (e *Engine) decline(out *TurnOutcome) {
	out.Action = Declined
	e.bus.Publish(PurchaseDeclineEvent{stamp: e.now(), Player: out.Player, Cell: out.To})
}

// completeTurn eliminates a bankrupt player, passes the turn on and counts
// the round.
func (e *Engine) completeTurn(out *TurnOutcome) error {
	p := e.byID[out.Player]
	if e.bank.HasNegativeBalance(p.ID) {
		released, err := e.eliminate(p, out.Round)
		if err != nil {
			return err
		}
		out.Eliminated = true
		out.Released = released
		out.Cell, _ = e.board.CellAt(out.To)
	} else {
		e.rotation.Advance()
	}
	e.round++

	if err := e.validateConservation(); err != nil {
		e.logger.Error("Conservation check failed", "error", err)
		return err
	}
	e.bus.Publish(TurnEndEvent{stamp: e.now(), Outcome: *out})
	e.maybeFinish()
	return nil
}

// eliminate removes p from play; removal already moves the rotation on to
// the next player.
func (e *Engine) eliminate(p *player.Player, round int) ([]int, error) {
	released := e.board.ReleaseCellsOwnedBy(p.ID)
	if err := e.rotation.Eliminate(p.ID); err != nil {
		return nil, err
	}
	p.Eliminated = true
	e.eliminatedAt[p.ID] = round

	balance := e.bank.BalanceOf(p.ID)
	e.logger.Info("Player eliminated", "player", p.Name, "round", round, "balance", balance, "released", len(released))
	e.bus.Publish(EliminationEvent{stamp: e.now(), Player: p.ID, Round: round, Balance: balance, Released: released})
	return released, nil
}

func (e *Engine) maybeFinish() {
	switch {
	case e.rotation.Len() <= 1:
		e.finish(LastPlayerStanding)
	case e.round >= e.cfg.MaxRounds:
		e.finish(RoundLimit)
	}
}

// Cancel ends the game immediately. A pending decision is abandoned and
// its continuation becomes a no-op that reports ErrDecisionResolved.
func (e *Engine) Cancel() {
	if e.state == Ended {
		return
	}
	if e.pending != nil {
		e.pending.resolved = true
		e.pending.answered.Store(true)
		e.pending = nil
	}
	if e.rotation == nil {
		e.state = Ended
		e.result = &Result{GameID: e.id, Seed: e.seed, Reason: Cancelled}
		return
	}
	e.finish(Cancelled)
}

// Run plays the game to the end. Human purchase decisions are handed to
// prompter; cancelling ctx cancels the game.
func (e *Engine) Run(ctx context.Context, prompter Prompter) (*Result, error) {
	if e.state == Setup {
		if err := e.Start(); err != nil {
			return nil, err
		}
	}

	for e.state == InProgress {
		if err := ctx.Err(); err != nil {
			e.Cancel()
			return e.result, err
		}

		_, pending, err := e.BeginTurn()
		if err != nil {
			return nil, err
		}
		if pending == nil {
			continue
		}
		if prompter == nil {
			e.Cancel()
			return e.result, ErrNoPrompter
		}

		resume, answers := pending.continuation()
		prompter.PromptPurchase(ctx, pending.Request(), resume)

		select {
		case buy := <-answers:
			if _, err := e.ResolveDecision(pending, buy); err != nil {
				return nil, err
			}
		case <-ctx.Done():
			e.Cancel()
			return e.result, ctx.Err()
		}
	}
	return e.result, nil
}
