package bank

import (
	"testing"

	"github.com/lox/landlord/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAccountsOnce(t *testing.T) {
	b := New()
	require.NoError(t, b.OpenAccounts([]player.ID{1, 2}, 300))
	assert.Equal(t, 300, b.BalanceOf(1))
	assert.Equal(t, 300, b.BalanceOf(2))
	assert.Equal(t, []player.ID{1, 2}, b.Accounts())

	assert.ErrorIs(t, b.OpenAccounts([]player.ID{3}, 10), ErrAccountsOpen)
}

func TestOpenAccountsRejectsDuplicates(t *testing.T) {
	assert.Error(t, New().OpenAccounts([]player.ID{1, 1}, 300))
}

func TestDebitHasNoFloor(t *testing.T) {
	b := New()
	require.NoError(t, b.OpenAccounts([]player.ID{1}, 50))

	require.NoError(t, b.Debit(1, 80))
	assert.Equal(t, -30, b.BalanceOf(1))
	assert.True(t, b.HasNegativeBalance(1))

	require.NoError(t, b.Credit(1, 30))
	assert.False(t, b.HasNegativeBalance(1), "zero is not negative")
}

func TestUnknownAccountAndNegativeAmounts(t *testing.T) {
	b := New()
	require.NoError(t, b.OpenAccounts([]player.ID{1}, 50))

	assert.ErrorIs(t, b.Credit(9, 1), ErrNoAccount)
	assert.ErrorIs(t, b.Debit(9, 1), ErrNoAccount)
	assert.ErrorIs(t, b.Credit(1, -1), ErrNegativeAmount)
	assert.ErrorIs(t, b.Debit(1, -1), ErrNegativeAmount)
	assert.Equal(t, 50, b.BalanceOf(1))
}

func TestTransferConservesTotal(t *testing.T) {
	b := New()
	require.NoError(t, b.OpenAccounts([]player.ID{1, 2, 3}, 100))
	before := b.Total()

	require.NoError(t, b.Transfer(1, 2, 40))
	require.NoError(t, b.Transfer(3, 1, 150))
	assert.Equal(t, before, b.Total())
	assert.Equal(t, 210, b.BalanceOf(1))
	assert.Equal(t, 140, b.BalanceOf(2))
	assert.Equal(t, -50, b.BalanceOf(3))

	assert.ErrorIs(t, b.Transfer(1, 7, 10), ErrNoAccount)
	assert.Equal(t, 210, b.BalanceOf(1), "failed transfer leaves payer untouched")
}

func TestPayBankMovesMoneyToReserve(t *testing.T) {
	b := New()
	require.NoError(t, b.OpenAccounts([]player.ID{1, 2}, 100))
	before := b.Total()

	require.NoError(t, b.PayBank(1, 60))
	assert.Equal(t, 40, b.BalanceOf(1))
	assert.Equal(t, 60, b.Reserve())
	assert.Equal(t, before, b.Total())

	require.NoError(t, b.Credit(2, 25))
	assert.Equal(t, before+25, b.Total(), "credits inject money")

	assert.ErrorIs(t, b.PayBank(9, 1), ErrNoAccount)
	assert.Equal(t, 60, b.Reserve())
}
