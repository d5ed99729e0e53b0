// Package board holds the track of cells and who owns them.
package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/landlord/internal/player"
)

var (
	ErrAlreadyInitialized = errors.New("board: cells already initialized")
	ErrNotInitialized     = errors.New("board: cells not initialized")
	ErrEmptyLayout        = errors.New("board: empty layout")
	ErrOutOfRange         = errors.New("board: position out of range")
	ErrCellOwned          = errors.New("board: cell already owned")
	ErrUnknownPlayer      = errors.New("board: player not in roster")
)

// Spec is the price and rent of one cell as configured.
type Spec struct {
	Price int
	Rent  int
}

// Cell is one position on the track. Owner refers into the roster and never
// keeps a player alive.
type Cell struct {
	Index int
	Price int
	Rent  int
	Owner player.ID
}

// Owned reports whether any player holds the cell.
func (c Cell) Owned() bool {
	return c.Owner != player.None
}

// Board is the ordered track.
type Board struct {
	cells  []Cell
	roster map[player.ID]bool
}

// New returns an empty board; call InitializeCells before use.
func New() *Board {
	return &Board{}
}

// InitializeCells builds the track from layout with every cell unowned.
// The roster limits who may buy.
func (b *Board) InitializeCells(layout []Spec, roster []player.ID) error {
	if b.cells != nil {
		return ErrAlreadyInitialized
	}
	if len(layout) == 0 {
		return ErrEmptyLayout
	}
	cells := make([]Cell, len(layout))
	for i, s := range layout {
		if s.Price <= 0 || s.Rent < 0 {
			return fmt.Errorf("board: cell %d has price %d rent %d", i, s.Price, s.Rent)
		}
		cells[i] = Cell{Index: i, Price: s.Price, Rent: s.Rent}
	}
	b.roster = make(map[player.ID]bool, len(roster))
	for _, id := range roster {
		b.roster[id] = true
	}
	b.cells = cells
	return nil
}

// Len is the number of cells on the track.
func (b *Board) Len() int {
	return len(b.cells)
}

// CellAt returns a copy of the cell at position.
func (b *Board) CellAt(position int) (Cell, error) {
	if b.cells == nil {
		return Cell{}, ErrNotInitialized
	}
	if position < 0 || position >= len(b.cells) {
		return Cell{}, fmt.Errorf("%w: %d of %d", ErrOutOfRange, position, len(b.cells))
	}
	return b.cells[position], nil
}

// Purchase assigns the cell to buyer and returns the price the caller must
// debit. Buying an owned cell is a caller bug.
func (b *Board) Purchase(position int, buyer player.ID) (int, error) {
	cell, err := b.CellAt(position)
	if err != nil {
		return 0, err
	}
	if !b.roster[buyer] {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPlayer, buyer)
	}
	if cell.Owned() {
		return 0, fmt.Errorf("%w: cell %d belongs to player %d", ErrCellOwned, position, cell.Owner)
	}
	b.cells[position].Owner = buyer
	return cell.Price, nil
}

// RentDue is what occupant owes for standing on position: the rent when
// someone else owns it, zero otherwise.
func (b *Board) RentDue(position int, occupant player.ID) int {
	cell, err := b.CellAt(position)
	if err != nil || !cell.Owned() || cell.Owner == occupant {
		return 0
	}
	return cell.Rent
}

// ReleaseCellsOwnedBy returns every cell held by id to the market and
// reports which positions were released. Calling it again is a no-op.
func (b *Board) ReleaseCellsOwnedBy(id player.ID) []int {
	if id == player.None {
		return nil
	}
	var released []int
	for i := range b.cells {
		if b.cells[i].Owner == id {
			b.cells[i].Owner = player.None
			released = append(released, i)
		}
	}
	return released
}

// OwnedBy lists the positions held by id.
func (b *Board) OwnedBy(id player.ID) []int {
	var owned []int
	for _, c := range b.cells {
		if id != player.None && c.Owner == id {
			owned = append(owned, c.Index)
		}
	}
	return owned
}

// Cells returns a snapshot of the track.
func (b *Board) Cells() []Cell {
	return slices.Clone(b.cells)
}
