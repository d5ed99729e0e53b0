package game

import (
	"time"

	"github.com/lox/landlord/internal/player"
)

// EventType names a game event.
type EventType string

const (
	EventTypeGameStart       EventType = "game_start"
	EventTypeTurnStart       EventType = "turn_start"
	EventTypeMove            EventType = "move"
	EventTypeLapComplete     EventType = "lap_complete"
	EventTypePurchase        EventType = "purchase"
	EventTypePurchaseDecline EventType = "purchase_decline"
	EventTypePurchasePending EventType = "purchase_pending"
	EventTypeRentPaid        EventType = "rent_paid"
	EventTypeElimination     EventType = "elimination"
	EventTypeTurnEnd         EventType = "turn_end"
	EventTypeGameEnd         EventType = "game_end"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything published on the bus.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

type stamp struct {
	at time.Time
}

func (s stamp) Timestamp() time.Time { return s.at }

// GameStartEvent carries the resolved play order.
type GameStartEvent struct {
	stamp
	GameID string
	Order  []player.ID
}

func (GameStartEvent) EventType() EventType { return EventTypeGameStart }

// TurnStartEvent is published before the active player rolls.
type TurnStartEvent struct {
	stamp
	State TurnState
}

func (TurnStartEvent) EventType() EventType { return EventTypeTurnStart }

// MoveEvent is published once the active player has rolled and moved.
type MoveEvent struct {
	stamp
	Player player.ID
	Roll   int
	From   int
	To     int
	Lapped bool
}

func (MoveEvent) EventType() EventType { return EventTypeMove }

// LapCompleteEvent is published when a player passes the start cell.
type LapCompleteEvent struct {
	stamp
	Player player.ID
	Bonus  int
}

func (LapCompleteEvent) EventType() EventType { return EventTypeLapComplete }

// PurchaseEvent is published when a cell changes hands.
type PurchaseEvent struct {
	stamp
	Player player.ID
	Cell   int
	Price  int
}

func (PurchaseEvent) EventType() EventType { return EventTypePurchase }

// PurchaseDeclineEvent is published when a player passes on a cell.
type PurchaseDeclineEvent struct {
	stamp
	Player player.ID
	Cell   int
}

func (PurchaseDeclineEvent) EventType() EventType { return EventTypePurchaseDecline }

// PurchasePendingEvent is published when a turn suspends for a human answer.
type PurchasePendingEvent struct {
	stamp
	Request PurchaseRequest
}

func (PurchasePendingEvent) EventType() EventType { return EventTypePurchasePending }

// RentPaidEvent is published when rent moves between players.
type RentPaidEvent struct {
	stamp
	From   player.ID
	To     player.ID
	Cell   int
	Amount int
}

func (RentPaidEvent) EventType() EventType { return EventTypeRentPaid }

// EliminationEvent is published when a player leaves the game.
type EliminationEvent struct {
	stamp
	Player   player.ID
	Round    int
	Balance  int
	Released []int
}

func (EliminationEvent) EventType() EventType { return EventTypeElimination }

// TurnEndEvent is published after every completed turn.
type TurnEndEvent struct {
	stamp
	Outcome TurnOutcome
}

func (TurnEndEvent) EventType() EventType { return EventTypeTurnEnd }

// GameEndEvent carries the final result.
type GameEndEvent struct {
	stamp
	Result Result
}

func (GameEndEvent) EventType() EventType { return EventTypeGameEnd }

// EventSubscriber receives published events on the engine goroutine.
// Subscribers may read engine state but must not drive the engine.
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus fans events out to subscribers.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers synchronously in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates an empty bus.
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
