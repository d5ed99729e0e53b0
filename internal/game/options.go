package game

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/landlord/internal/dice"
	"github.com/lox/landlord/internal/turnorder"
)

// Option configures an Engine during New.
type Option func(*engineConfig)

type engineConfig struct {
	logger     *log.Logger
	clock      quartz.Clock
	bus        EventBus
	roller     dice.Roller
	gameID     string
	beforeTurn func(TurnState)
	orderOpts  []turnorder.Option
}

// WithLogger sets the logger; the default discards everything below error.
func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) { c.logger = logger }
}

// WithClock sets the clock used for event timestamps and seeding.
func WithClock(clock quartz.Clock) Option {
	return func(c *engineConfig) { c.clock = clock }
}

// WithEventBus publishes to bus instead of a private one.
func WithEventBus(bus EventBus) Option {
	return func(c *engineConfig) { c.bus = bus }
}

// WithDice replaces the configured dice for both turn order and movement.
func WithDice(roller dice.Roller) Option {
	return func(c *engineConfig) { c.roller = roller }
}

// WithGameID fixes the game identifier instead of generating one.
func WithGameID(id string) Option {
	return func(c *engineConfig) { c.gameID = id }
}

// WithBeforeTurn installs an observational hook called once before every
// turn. It must not call back into the engine.
func WithBeforeTurn(fn func(TurnState)) Option {
	return func(c *engineConfig) { c.beforeTurn = fn }
}

// WithTurnOrderOptions passes options to the turn order resolver.
func WithTurnOrderOptions(opts ...turnorder.Option) Option {
	return func(c *engineConfig) { c.orderOpts = append(c.orderOpts, opts...) }
}
