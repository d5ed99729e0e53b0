// Package tui is the terminal front end for interactive games: a bubbletea
// screen with a purchase prompt, and a plain line-based fallback.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/game"
)

const sidebarWidth = 30

type pendingPrompt struct {
	request game.PurchaseRequest
	resume  game.Resume
}

// Model is the bubbletea model for a game in progress.
type Model struct {
	logger *log.Logger
	keys   KeyMap
	help   help.Model

	logViewport viewport.Model
	lines       []string
	narrator    *Narrator
	styled      bool

	players []game.PlayerView
	cells   []board.Cell
	prompt  *pendingPrompt
	result  *game.Result
	err     error

	width, height int
	quitting      bool
	onQuit        func()
}

// NewModel creates the game screen. onQuit is called when the player asks
// to leave; it should cancel the engine.
func NewModel(logger *log.Logger, onQuit func()) *Model {
	vp := viewport.New(10, 5)
	return &Model{
		logger:      logger.WithPrefix("tui"),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
		styled:      true,
		onQuit:      onQuit,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logViewport.Width = max(1, m.width-sidebarWidth-4)
		m.logViewport.Height = max(1, m.height-8)
		m.logViewport.GotoBottom()

	case EventMsg:
		m.players, m.cells = msg.Players, msg.Cells
		if m.narrator == nil {
			m.narrator = NewNarrator(msg.Players, m.styled)
		}
		if line := m.narrator.Describe(msg.Event); line != "" {
			m.appendLine(line)
		}

	case PromptMsg:
		m.prompt = &pendingPrompt{request: msg.Request, resume: msg.Resume}

	case DoneMsg:
		m.result, m.err = msg.Result, msg.Err
		m.prompt = nil
		if msg.Err != nil {
			m.appendLine(ErrorStyle.Render("Error: " + msg.Err.Error()))
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Buy):
			m.answer(true)
		case key.Matches(msg, m.keys.Decline):
			m.answer(false)
		case key.Matches(msg, m.keys.Up):
			m.logViewport.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.logViewport.ScrollDown(1)
		}
	}
	return m, nil
}

func (m *Model) answer(buy bool) {
	if m.prompt == nil {
		return
	}
	p := m.prompt
	m.prompt = nil
	if err := p.resume(buy); err != nil {
		m.logger.Warn("Purchase answer rejected", "error", err)
		m.appendLine(ErrorStyle.Render("Answer not accepted: " + err.Error()))
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.logViewport.SetContent(strings.Join(m.lines, "\n"))
	m.logViewport.GotoBottom()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	logPane := PaneStyle.
		Width(m.logViewport.Width).
		Height(m.logViewport.Height).
		Render(m.logViewport.View())
	sidebar := PaneStyle.
		Width(sidebarWidth).
		Height(m.logViewport.Height).
		Render(m.renderSidebar())
	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)

	bottom := FocusedPaneStyle.
		Width(max(1, m.width-2)).
		Render(m.renderActionPane())

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom, m.help.View(m.keys))
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	owned := 0
	for _, c := range m.cells {
		if c.Owned() {
			owned++
		}
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Cells owned: %d/%d", owned, len(m.cells))))
	b.WriteString("\n\n")

	for _, p := range m.players {
		name := PlayerStyle(p.Color).Render(p.Name)
		if p.Eliminated {
			b.WriteString(fmt.Sprintf("%s %s\n", name, ErrorStyle.Render("out")))
			continue
		}
		b.WriteString(fmt.Sprintf("%s  $%d\n", name, p.Balance))
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  %s · cell %d · %d owned", p.Strategy, p.Position, len(p.Cells))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderActionPane() string {
	switch {
	case m.result != nil:
		return RenderStandings(m.result) + "\n" + InfoStyle.Render("Press q to exit")
	case m.prompt != nil:
		req := m.prompt.request
		line := fmt.Sprintf("%s, buy cell %d for $%d (rent $%d)? You have $%d.",
			req.Name, req.Cell.Index, req.Cell.Price, req.Cell.Rent, req.Balance)
		if !req.Affordable() {
			line += " " + WarningStyle.Render("Buying would bankrupt you.")
		}
		return PromptStyle.Render(line)
	case m.err != nil:
		return ErrorStyle.Render(m.err.Error())
	default:
		return InfoStyle.Render("Waiting for the other players...")
	}
}

// Play runs engine behind a full-screen UI and returns once the player
// exits. Quitting early cancels the game.
func Play(ctx context.Context, engine *game.Engine, logger *log.Logger, opts ...tea.ProgramOption) (*game.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(logger, cancel)
	program := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	bridge := NewBridge(program, engine)
	engine.EventBus().Subscribe(bridge)

	var (
		result *game.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, runErr = engine.Run(ctx, bridge)
		program.Send(DoneMsg{Result: result, Err: runErr})
	}()

	_, err := program.Run()
	cancel()
	<-done
	if err != nil {
		return result, fmt.Errorf("run tui: %w", err)
	}
	return result, runErr
}
