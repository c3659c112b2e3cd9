package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"bookie/models"
)

func TestBusDeliversThroughTransactionalFlush(t *testing.T) {
	mainBus := NewBus()
	txBus := NewTransactionalBus(mainBus)

	received := make(chan UnitsChangedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeUnitsChanged, func(ctx context.Context, event Event) {
		defer wg.Done()
		changed, ok := event.(UnitsChangedEvent)
		if !ok {
			t.Errorf("Expected UnitsChangedEvent, got %T", event)
			return
		}
		received <- changed
	})

	testEvent := UnitsChangedEvent{
		GuildID:    789,
		UserID:     123456,
		OldBalance: decimal.NewFromInt(100),
		NewBalance: decimal.RequireFromString("104.55"),
		TxType:     models.TransactionTypeBetWon,
	}

	txBus.Publish(testEvent)
	txBus.Flush(context.Background())

	wg.Wait()

	select {
	case got := <-received:
		assert.Equal(t, testEvent.GuildID, got.GuildID)
		assert.Equal(t, testEvent.UserID, got.UserID)
		assert.True(t, testEvent.OldBalance.Equal(got.OldBalance))
		assert.True(t, testEvent.NewBalance.Equal(got.NewBalance))
		assert.Equal(t, testEvent.TxType, got.TxType)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

func TestBusDeliversMultipleStagedEvents(t *testing.T) {
	mainBus := NewBus()
	txBus := NewTransactionalBus(mainBus)

	received := make(chan BetPlacedEvent, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeBetPlaced, func(ctx context.Context, event Event) {
		defer wg.Done()
		if placed, ok := event.(BetPlacedEvent); ok {
			received <- placed
		}
	})

	for _, betID := range []int64{1, 2, 3} {
		txBus.Publish(BetPlacedEvent{
			BetID:   betID,
			GuildID: 100,
			UserID:  betID * 10,
			Units:   decimal.NewFromInt(5),
		})
	}

	txBus.Flush(context.Background())
	wg.Wait()

	betIDs := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		select {
		case event := <-received:
			betIDs[event.BetID] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("Only received %d out of 3 events", len(betIDs))
		}
	}

	// Delivery order is not guaranteed, only completeness
	assert.True(t, betIDs[1])
	assert.True(t, betIDs[2])
	assert.True(t, betIDs[3])
}

func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	txBus := NewTransactionalBus(mainBus)

	received := make(chan bool, 1)
	mainBus.Subscribe(EventTypeBetResolved, func(ctx context.Context, event Event) {
		received <- true
	})

	txBus.Publish(BetResolvedEvent{
		BetID:   42,
		GuildID: 789,
		UserID:  123456,
		Status:  models.BetStatusCancelled,
		Result:  decimal.Zero,
	})
	txBus.Discard()

	// A flush after discard must deliver nothing
	txBus.Flush(context.Background())

	select {
	case <-received:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBusSurvivesPanickingHandler(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)

	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		defer wg.Done()
		panic("handler exploded")
	})

	delivered := false
	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		defer wg.Done()
		delivered = true
	})

	bus.Emit(context.Background(), UserCreatedEvent{UserID: 1, Username: "alice"})
	wg.Wait()

	assert.True(t, delivered)
}
