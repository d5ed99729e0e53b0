package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lox/landlord/internal/player"
)

// EndReason explains why a game ended.
type EndReason int

const (
	NotEnded EndReason = iota
	LastPlayerStanding
	RoundLimit
	Cancelled
)

var endReasonNames = map[EndReason]string{
	NotEnded:           "not_ended",
	LastPlayerStanding: "last_player_standing",
	RoundLimit:         "round_limit",
	Cancelled:          "cancelled",
}

func (r EndReason) String() string {
	if s, ok := endReasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

func (r EndReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *EndReason) UnmarshalText(text []byte) error {
	for k, v := range endReasonNames {
		if v == string(text) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown end reason %q", text)
}

// Standing is one player's final position.
type Standing struct {
	Rank            int       `json:"rank"`
	Player          player.ID `json:"player"`
	Name            string    `json:"name"`
	Strategy        string    `json:"strategy"`
	Kind            string    `json:"kind"`
	Color           string    `json:"color"`
	Balance         int       `json:"balance"`
	Cells           []int     `json:"cells"`
	Eliminated      bool      `json:"eliminated"`
	EliminatedRound int       `json:"eliminated_round,omitempty"`
}

// Result is the final state of a game.
type Result struct {
	GameID     string     `json:"game_id"`
	Seed       int64      `json:"seed"`
	Reason     EndReason  `json:"reason"`
	Rounds     int        `json:"rounds"`
	Winner     player.ID  `json:"winner"`
	WinnerName string     `json:"winner_name,omitempty"`
	Standings  []Standing `json:"standings"`
}

// WinnerStanding returns the winner's row, if there is a winner.
func (r *Result) WinnerStanding() (Standing, bool) {
	for _, s := range r.Standings {
		if s.Player == r.Winner && r.Winner != player.None {
			return s, true
		}
	}
	return Standing{}, false
}

func (e *Engine) finish(reason EndReason) {
	e.state = Ended

	winner := player.None
	if reason != Cancelled {
		winner = e.pickWinner()
	}
	res := &Result{
		GameID:    e.id,
		Seed:      e.seed,
		Reason:    reason,
		Rounds:    e.round,
		Winner:    winner,
		Standings: e.standings(winner),
	}
	if p, ok := e.byID[winner]; ok {
		res.WinnerName = p.Name
	}
	e.result = res

	e.logger.Info("Game ended", "reason", reason, "rounds", e.round, "winner", res.WinnerName)
	e.bus.Publish(GameEndEvent{stamp: e.now(), Result: *res})
}

// pickWinner ranks the survivors by balance. When the best balance is
// shared, the tied player the rotation would reach first, starting after
// the current player, wins. The rotation itself is left where it is.
func (e *Engine) pickWinner() player.ID {
	candidates := e.rotation.Winners()
	switch len(candidates) {
	case 0:
		return player.None
	case 1:
		return candidates[0]
	}

	slices.SortStableFunc(candidates, func(a, b player.ID) int {
		return cmp.Compare(e.bank.BalanceOf(b), e.bank.BalanceOf(a))
	})
	top := e.bank.BalanceOf(candidates[0])
	if e.bank.BalanceOf(candidates[1]) != top {
		return candidates[0]
	}

	for _, id := range e.rotation.Upcoming() {
		if e.bank.BalanceOf(id) == top {
			e.logger.Debug("Balance tie broken by turn order", "balance", top, "winner", e.byID[id].Name)
			return id
		}
	}
	return candidates[0]
}

// standings lists survivors first (winner, then by balance) and eliminated
// players after them, most recently eliminated first.
func (e *Engine) standings(winner player.ID) []Standing {
	rows := make([]Standing, 0, len(e.players))
	for _, p := range e.players {
		rows = append(rows, Standing{
			Player:          p.ID,
			Name:            p.Name,
			Strategy:        p.Strategy.String(),
			Kind:            p.Kind().String(),
			Color:           p.Color,
			Balance:         e.bank.BalanceOf(p.ID),
			Cells:           e.board.OwnedBy(p.ID),
			Eliminated:      p.Eliminated,
			EliminatedRound: e.eliminatedAt[p.ID],
		})
	}

	slices.SortStableFunc(rows, func(a, b Standing) int {
		if a.Eliminated != b.Eliminated {
			if a.Eliminated {
				return 1
			}
			return -1
		}
		if a.Eliminated {
			return cmp.Compare(b.EliminatedRound, a.EliminatedRound)
		}
		if (a.Player == winner) != (b.Player == winner) {
			if a.Player == winner {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Balance, a.Balance)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
