package tui

import (
	"fmt"
	"strings"

	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/player"
)

// Narrator turns game events into one-line log entries.
type Narrator struct {
	names  map[player.ID]string
	colors map[player.ID]string
	styled bool
}

// NewNarrator names players from a roster snapshot. When styled is set,
// names are rendered in the player's colour.
func NewNarrator(roster []game.PlayerView, styled bool) *Narrator {
	n := &Narrator{
		names:  make(map[player.ID]string, len(roster)),
		colors: make(map[player.ID]string, len(roster)),
		styled: styled,
	}
	for _, p := range roster {
		n.names[p.ID] = p.Name
		n.colors[p.ID] = p.Color
	}
	return n
}

func (n *Narrator) name(id player.ID) string {
	name, ok := n.names[id]
	if !ok {
		name = fmt.Sprintf("player %d", id)
	}
	if n.styled {
		return PlayerStyle(n.colors[id]).Render(name)
	}
	return name
}

// Describe returns the log line for event, or "" for events that are not
// worth a line of their own.
func (n *Narrator) Describe(event game.GameEvent) string {
	switch ev := event.(type) {
	case game.GameStartEvent:
		names := make([]string, len(ev.Order))
		for i, id := range ev.Order {
			names[i] = n.name(id)
		}
		return "Turn order: " + strings.Join(names, ", ")
	case game.TurnStartEvent:
		return fmt.Sprintf("Round %d: %s's turn ($%d, cell %d)", ev.State.Round+1, n.name(ev.State.Player), ev.State.Balance, ev.State.Position)
	case game.MoveEvent:
		return fmt.Sprintf("%s rolls %d and moves to cell %d", n.name(ev.Player), ev.Roll, ev.To)
	case game.LapCompleteEvent:
		return fmt.Sprintf("%s completes a lap and collects $%d", n.name(ev.Player), ev.Bonus)
	case game.PurchaseEvent:
		return fmt.Sprintf("%s buys cell %d for $%d", n.name(ev.Player), ev.Cell, ev.Price)
	case game.PurchaseDeclineEvent:
		return fmt.Sprintf("%s passes on cell %d", n.name(ev.Player), ev.Cell)
	case game.PurchasePendingEvent:
		return fmt.Sprintf("%s is deciding on cell %d", n.name(ev.Request.Player), ev.Request.Cell.Index)
	case game.RentPaidEvent:
		return fmt.Sprintf("%s pays $%d rent to %s for cell %d", n.name(ev.From), ev.Amount, n.name(ev.To), ev.Cell)
	case game.EliminationEvent:
		line := fmt.Sprintf("%s is eliminated in round %d with $%d", n.name(ev.Player), ev.Round, ev.Balance)
		if len(ev.Released) > 0 {
			line += fmt.Sprintf("; cells %v are back on the market", ev.Released)
		}
		return line
	case game.GameEndEvent:
		if ev.Result.Winner == player.None {
			return fmt.Sprintf("Game over after %d rounds (%s)", ev.Result.Rounds, ev.Result.Reason)
		}
		return fmt.Sprintf("Game over after %d rounds (%s): %s wins", ev.Result.Rounds, ev.Result.Reason, n.name(ev.Result.Winner))
	default:
		return ""
	}
}
