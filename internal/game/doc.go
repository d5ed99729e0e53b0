// Package game runs a property-trading board game from setup to a winner.
//
// The main type is Engine. It owns the round counter, the bank, the board,
// the roster and the rotation of live players, and moves through three
// states: Setup, InProgress and Ended.
//
// # Basic Usage
//
//	e, err := game.New(config.Default().ReplaceHumans(player.Random))
//	if err != nil {
//	    return err
//	}
//	result, err := e.Run(ctx, nil)
//
// # Two-phase turns
//
// A turn normally completes inside BeginTurn. When the active player is
// human and lands on an unowned cell, BeginTurn returns a PendingDecision
// instead and nothing else may happen until ResolveDecision is called with
// that token:
//
//	outcome, pending, err := e.BeginTurn()
//	if pending != nil {
//	    outcome, err = e.ResolveDecision(pending, true)
//	}
//
// Run wires this to a Prompter, handing it a Resume continuation that may
// be invoked exactly once, from any goroutine.
//
// # Determinism
//
// Every source of randomness is derived from the configured seed, so a game
// replays exactly given the same configuration and the same human answers.
// Tests can replace the dice with dice.Scripted via WithDice.
package game
