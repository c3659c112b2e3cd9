package events

import (
	"context"
	"sync"

	"bookie/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated  EventType = "user_created"
	EventTypeBetPlaced    EventType = "bet_placed"
	EventTypeBetResolved  EventType = "bet_resolved"
	EventTypeUnitsChanged EventType = "units_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID   int64
	Username string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// BetPlacedEvent represents a bet that was placed
type BetPlacedEvent struct {
	BetID   int64
	GuildID int64
	UserID  int64
	GameID  string
	Units   decimal.Decimal
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetResolvedEvent represents a bet that reached a terminal status
type BetResolvedEvent struct {
	BetID   int64
	GuildID int64
	UserID  int64
	Status  models.BetStatus
	Result  decimal.Decimal
}

func (e BetResolvedEvent) Type() EventType {
	return EventTypeBetResolved
}

// UnitsChangedEvent represents a change to a guild member's units balance
type UnitsChangedEvent struct {
	GuildID    int64
	UserID     int64
	OldBalance decimal.Decimal
	NewBalance decimal.Decimal
	TxType     models.TransactionType
}

func (e UnitsChangedEvent) Type() EventType {
	return EventTypeUnitsChanged
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Handlers run asynchronously so a slow subscriber cannot block a command
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stages events alongside a unit of work and flushes
// them to the real bus only after the database commit succeeds.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits staged events; called after a successful commit.
// Events use a background context so they outlive the request.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops staged events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
