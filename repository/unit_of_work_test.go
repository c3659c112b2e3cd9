package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookie/events"
	"bookie/models"
	"bookie/repository/testutil"
)

func TestUnitOfWork_CommitFlushesEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	seedMember(t, testDB, 100, 1, decimal.NewFromInt(100))

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBetPlaced, func(ctx context.Context, e events.Event) {
		received <- e
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	bet := testutil.CreateTestBet(100, 1, nil)
	bet.BetType = models.BetTypeProp
	require.NoError(t, uow.BetRepository().Create(ctx, bet))
	require.NoError(t, uow.GuildUserRepository().DebitUnits(ctx, 100, 1, bet.Units))

	uow.EventBus().Publish(events.BetPlacedEvent{
		BetID:   bet.ID,
		GuildID: 100,
		UserID:  1,
		Units:   bet.Units,
	})

	// Nothing reaches subscribers before commit
	select {
	case <-received:
		t.Fatal("event published before commit")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, uow.Commit())

	select {
	case e := <-received:
		placed, ok := e.(events.BetPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, bet.ID, placed.BetID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered after commit")
	}

	gu, err := NewGuildUserRepository(testDB.DB).Get(ctx, 100, 1)
	require.NoError(t, err)
	assert.True(t, gu.UnitsBalance.Equal(decimal.NewFromInt(95)))
}

func TestUnitOfWork_RollbackDiscardsEverything(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	seedMember(t, testDB, 200, 2, decimal.NewFromInt(100))

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeUnitsChanged, func(ctx context.Context, e events.Event) {
		received <- e
	})

	uow := NewUnitOfWorkFactory(testDB.DB, bus).Create()
	require.NoError(t, uow.Begin(ctx))

	require.NoError(t, uow.GuildUserRepository().DebitUnits(ctx, 200, 2, decimal.NewFromInt(40)))
	uow.EventBus().Publish(events.UnitsChangedEvent{GuildID: 200, UserID: 2})

	require.NoError(t, uow.Rollback())

	gu, err := NewGuildUserRepository(testDB.DB).Get(ctx, 200, 2)
	require.NoError(t, err)
	assert.True(t, gu.UnitsBalance.Equal(decimal.NewFromInt(100)))

	select {
	case <-received:
		t.Fatal("event delivered after rollback")
	case <-time.After(50 * time.Millisecond):
	}

	// Rollback after rollback is a no-op
	require.NoError(t, uow.Rollback())
}
