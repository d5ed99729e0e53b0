package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/landlord/internal/game"
)

// RenderStandings draws the final table for a finished game.
func RenderStandings(res *game.Result) string {
	var b strings.Builder

	headline := fmt.Sprintf("Game over after %d rounds (%s)", res.Rounds, res.Reason)
	b.WriteString(HeaderStyle.Render(headline))
	b.WriteString("\n")
	if w, ok := res.WinnerStanding(); ok {
		b.WriteString(SuccessStyle.Render("Winner: ") + PlayerStyle(w.Color).Render(w.Name))
	} else {
		b.WriteString(WarningStyle.Render("No winner"))
	}
	b.WriteString("\n")

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(InfoStyle).
		Headers("#", "Player", "Strategy", "Balance", "Cells", "Status")
	for _, s := range res.Standings {
		status := "playing"
		if s.Eliminated {
			status = fmt.Sprintf("out in round %d", s.EliminatedRound)
		}
		t.Row(
			fmt.Sprint(s.Rank),
			PlayerStyle(s.Color).Render(s.Name),
			s.Strategy,
			fmt.Sprintf("$%d", s.Balance),
			fmt.Sprint(len(s.Cells)),
			status,
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return style.Bold(true)
		}
		return style
	})
	b.WriteString(t.String())
	return b.String()
}
