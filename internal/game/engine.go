package game

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/bank"
	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/dice"
	"github.com/lox/landlord/internal/gameid"
	"github.com/lox/landlord/internal/player"
	"github.com/lox/landlord/internal/randutil"
	"github.com/lox/landlord/internal/rotation"
	"github.com/lox/landlord/internal/turnorder"
)

var (
	ErrNotStarted        = errors.New("game: not started")
	ErrGameOver          = errors.New("game: already ended")
	ErrTurnInFlight      = errors.New("game: a turn is waiting for a purchase decision")
	ErrNoPendingDecision = errors.New("game: no purchase decision pending")
	ErrStaleDecision     = errors.New("game: decision token does not match the pending turn")
	ErrDecisionResolved  = errors.New("game: purchase decision already resolved")
	ErrNoPrompter        = errors.New("game: human player needs a purchase prompter")
	ErrConservation      = errors.New("game: money conservation violated")
)

// Random streams derived from the game seed.
const (
	streamDice = iota + 1
	streamStrategies
)

// State is the engine lifecycle.
type State int

const (
	Setup State = iota
	InProgress
	Ended
)

func (s State) String() string {
	switch s {
	case Setup:
		return "setup"
	case InProgress:
		return "in_progress"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TurnState is what the before-turn hook sees.
type TurnState struct {
	GameID    string
	Round     int // completed turns so far
	Player    player.ID
	Name      string
	Position  int
	Balance   int
	Remaining int
	Terminal  bool // the game has ended; no further turns will run
}

// Engine drives one game. It is not safe for concurrent use: at most one
// turn is in flight and every call must come from the same goroutine, with
// the exception of a Resume continuation.
type Engine struct {
	id     string
	cfg    config.Game
	seed   int64
	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus

	roller    dice.Roller
	bank      *bank.Bank
	board     *board.Board
	players   []*player.Player
	byID      map[player.ID]*player.Player
	rotation  *rotation.Rotation
	orderOpts []turnorder.Option

	state      State
	round      int
	pending    *PendingDecision
	nextToken  uint64
	beforeTurn func(TurnState)

	eliminatedAt map[player.ID]int
	startTotal   int
	bonusPaid    int
	result       *Result
}

// New validates cfg and builds the dice, bank, board and roster. The engine
// is left in Setup; call Start or Run.
func New(cfg config.Game, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ec := &engineConfig{}
	for _, opt := range opts {
		opt(ec)
	}
	if ec.logger == nil {
		ec.logger = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	}
	if ec.clock == nil {
		ec.clock = quartz.NewReal()
	}
	if ec.bus == nil {
		ec.bus = NewEventBus()
	}
	if ec.gameID == "" {
		id, err := gameid.New()
		if err != nil {
			return nil, err
		}
		ec.gameID = id
	}

	cfg = cfg.Clone()
	seed := randutil.SeedFromClock(ec.clock)
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	roller := ec.roller
	if roller == nil {
		d, err := dice.New(randutil.Derive(seed, streamDice), cfg.Dice)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
		}
		roller = d
	}

	e := &Engine{
		id:           ec.gameID,
		cfg:          cfg,
		seed:         seed,
		logger:       ec.logger.WithPrefix("engine").With("game", ec.gameID),
		clock:        ec.clock,
		bus:          ec.bus,
		roller:       roller,
		bank:         bank.New(),
		board:        board.New(),
		byID:         make(map[player.ID]*player.Player, len(cfg.Players)),
		orderOpts:    ec.orderOpts,
		beforeTurn:   ec.beforeTurn,
		eliminatedAt: make(map[player.ID]int),
	}

	strategyRNG := randutil.Derive(seed, streamStrategies)
	colors := player.Palette(len(cfg.Players))
	ids := make([]player.ID, len(cfg.Players))
	for i, spec := range cfg.Players {
		strategy, err := player.NewStrategy(spec.Strategy, spec.Threshold, strategyRNG)
		if err != nil {
			return nil, fmt.Errorf("%w: player %q: %w", config.ErrInvalid, spec.Name, err)
		}
		p := player.New(player.ID(i+1), spec.Name, strategy)
		p.Color = colors[i]
		e.players = append(e.players, p)
		e.byID[p.ID] = p
		ids[i] = p.ID
	}

	if err := e.board.InitializeCells(cfg.Board, ids); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	if err := e.bank.OpenAccounts(ids, cfg.StartingBalance); err != nil {
		return nil, err
	}
	e.startTotal = e.bank.Total()

	e.logger.Debug("Game set up",
		"seed", seed,
		"cells", e.board.Len(),
		"players", len(e.players),
		"maxRounds", cfg.MaxRounds)
	return e, nil
}

// Start decides the play order and moves the engine to InProgress.
func (e *Engine) Start() error {
	if e.state != Setup {
		return fmt.Errorf("game: cannot start from state %s", e.state)
	}

	opts := append(slices.Clone(e.orderOpts), turnorder.WithPassHook(func(p turnorder.Pass) {
		e.logger.Debug("Turn order pass", "slot", p.Slot, "candidates", p.Candidates, "rolls", p.Rolls, "leaders", p.Leaders)
	}))
	ids := make([]player.ID, len(e.players))
	for i, p := range e.players {
		ids[i] = p.ID
	}
	order, err := turnorder.New(e.roller, opts...).ResolveOrder(ids)
	if err != nil {
		return fmt.Errorf("resolve turn order: %w", err)
	}

	e.rotation = rotation.New(order)
	e.state = InProgress

	names := make([]string, len(order))
	for i, id := range order {
		names[i] = e.byID[id].Name
	}
	e.logger.Info("Game started", "order", names)
	e.bus.Publish(GameStartEvent{stamp: e.now(), GameID: e.id, Order: order})

	e.maybeFinish()
	return nil
}

// ID is the game identifier.
func (e *Engine) ID() string { return e.id }

// Seed is the seed every random stream was derived from.
func (e *Engine) Seed() int64 { return e.seed }

// State reports where the engine is in its lifecycle.
func (e *Engine) State() State { return e.state }

// TurnState reports the round, the player whose turn is next and whether the
// game has ended. Before Start there is no current player.
func (e *Engine) TurnState() TurnState {
	if e.rotation == nil {
		return TurnState{GameID: e.id, Terminal: e.state == Ended}
	}
	return e.turnState(e.byID[e.rotation.Current()])
}

// Round is the number of completed turns.
func (e *Engine) Round() int { return e.round }

// Config returns the configuration the game was built from.
func (e *Engine) Config() config.Game { return e.cfg.Clone() }

// EventBus returns the bus events are published on.
func (e *Engine) EventBus() EventBus { return e.bus }

// Pending returns the suspended turn, if any.
func (e *Engine) Pending() *PendingDecision { return e.pending }

// Result is nil until the engine has ended.
func (e *Engine) Result() *Result { return e.result }

// Balance returns a player's bank balance.
func (e *Engine) Balance(id player.ID) int { return e.bank.BalanceOf(id) }

// Cells returns a snapshot of the board.
func (e *Engine) Cells() []board.Cell { return e.board.Cells() }

// Current is the player whose turn is next, or player.None before Start.
func (e *Engine) Current() player.ID {
	if e.rotation == nil {
		return player.None
	}
	return e.rotation.Current()
}

// Order lists the live players in play order.
func (e *Engine) Order() []player.ID {
	if e.rotation == nil {
		return nil
	}
	return e.rotation.Remaining()
}

// PlayerView is a read-only snapshot of a roster member.
type PlayerView struct {
	ID         player.ID
	Name       string
	Color      string
	Strategy   string
	Kind       player.Kind
	Position   int
	Balance    int
	Cells      []int
	Eliminated bool
}

// Players snapshots the whole roster in roster order.
func (e *Engine) Players() []PlayerView {
	views := make([]PlayerView, len(e.players))
	for i, p := range e.players {
		views[i] = e.view(p)
	}
	return views
}

// Player snapshots one roster member.
func (e *Engine) Player(id player.ID) (PlayerView, bool) {
	p, ok := e.byID[id]
	if !ok {
		return PlayerView{}, false
	}
	return e.view(p), true
}

func (e *Engine) view(p *player.Player) PlayerView {
	return PlayerView{
		ID:         p.ID,
		Name:       p.Name,
		Color:      p.Color,
		Strategy:   p.Strategy.String(),
		Kind:       p.Kind(),
		Position:   p.Position,
		Balance:    e.bank.BalanceOf(p.ID),
		Cells:      e.board.OwnedBy(p.ID),
		Eliminated: p.Eliminated,
	}
}

func (e *Engine) now() stamp {
	return stamp{at: e.clock.Now()}
}

func (e *Engine) turnState(p *player.Player) TurnState {
	ts := TurnState{
		GameID:    e.id,
		Round:     e.round,
		Remaining: e.rotation.Len(),
		Terminal:  e.state == Ended,
	}
	if p != nil {
		ts.Player = p.ID
		ts.Name = p.Name
		ts.Position = p.Position
		ts.Balance = e.bank.BalanceOf(p.ID)
	}
	return ts
}

// validateConservation checks that money only entered through lap bonuses.
func (e *Engine) validateConservation() error {
	want := e.startTotal + e.bonusPaid
	if got := e.bank.Total(); got != want {
		return fmt.Errorf("%w: total %d, expected %d", ErrConservation, got, want)
	}
	return nil
}
