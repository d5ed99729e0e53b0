// Package bank owns every player balance. Nothing else writes money.
package bank

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/landlord/internal/player"
)

var (
	ErrAccountsOpen   = errors.New("bank: accounts already open")
	ErrNoAccount      = errors.New("bank: no account for player")
	ErrNegativeAmount = errors.New("bank: negative amount")
)

// Bank is the ledger of player balances plus the bank's own reserve, which
// collects purchase payments. Balances may go below zero; that is a game
// condition, not a failure.
type Bank struct {
	balances map[player.ID]int
	order    []player.ID
	reserve  int
}

// New returns a bank with no accounts.
func New() *Bank {
	return &Bank{}
}

// OpenAccounts credits every player with the starting balance. It may only
// be called once.
func (b *Bank) OpenAccounts(ids []player.ID, startingBalance int) error {
	if b.balances != nil {
		return ErrAccountsOpen
	}
	b.balances = make(map[player.ID]int, len(ids))
	for _, id := range ids {
		if _, dup := b.balances[id]; dup {
			return fmt.Errorf("bank: duplicate account for player %d", id)
		}
		b.balances[id] = startingBalance
		b.order = append(b.order, id)
	}
	return nil
}

// Credit adds amount to the player's balance.
func (b *Bank) Credit(id player.ID, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: credit %d", ErrNegativeAmount, amount)
	}
	if _, ok := b.balances[id]; !ok {
		return fmt.Errorf("%w %d", ErrNoAccount, id)
	}
	b.balances[id] += amount
	return nil
}

// Debit subtracts amount from the player's balance with no floor.
func (b *Bank) Debit(id player.ID, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: debit %d", ErrNegativeAmount, amount)
	}
	if _, ok := b.balances[id]; !ok {
		return fmt.Errorf("%w %d", ErrNoAccount, id)
	}
	b.balances[id] -= amount
	return nil
}

// Transfer moves amount from one player to another. Both accounts are
// checked before either balance changes.
func (b *Bank) Transfer(from, to player.ID, amount int) error {
	if _, ok := b.balances[to]; !ok {
		return fmt.Errorf("%w %d", ErrNoAccount, to)
	}
	if err := b.Debit(from, amount); err != nil {
		return err
	}
	b.balances[to] += amount
	return nil
}

// PayBank moves amount from the player into the bank's reserve.
func (b *Bank) PayBank(id player.ID, amount int) error {
	if err := b.Debit(id, amount); err != nil {
		return err
	}
	b.reserve += amount
	return nil
}

// Reserve is what the bank has collected from purchases.
func (b *Bank) Reserve() int {
	return b.reserve
}

// BalanceOf returns the player's balance, or zero for an unknown player.
func (b *Bank) BalanceOf(id player.ID) int {
	return b.balances[id]
}

// HasNegativeBalance reports whether the player owes more than they hold.
func (b *Bank) HasNegativeBalance(id player.ID) bool {
	return b.balances[id] < 0
}

// Total is all money in the game: every player balance plus the reserve.
// Only Credit changes it.
func (b *Bank) Total() int {
	total := b.reserve
	for _, v := range b.balances {
		total += v
	}
	return total
}

// Accounts returns account holders in the order they were opened.
func (b *Bank) Accounts() []player.ID {
	return slices.Clone(b.order)
}
