package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookie/models"
	"bookie/repository/testutil"
	"bookie/service"
)

func TestBetRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewBetRepository(testDB.DB)

	seedMember(t, testDB, 100, 1, decimal.NewFromInt(100))

	game := testutil.CreateTestGame("ev-1001", "NFL")
	require.NoError(t, NewGameRepository(testDB.DB).Upsert(ctx, game))

	t.Run("successful creation", func(t *testing.T) {
		bet := testutil.CreateTestBet(100, 1, &game.ID)
		require.NoError(t, repo.Create(ctx, bet))

		assert.NotZero(t, bet.ID)
		assert.Equal(t, models.BetStatusPending, bet.Status)
		assert.False(t, bet.CreatedAt.IsZero())
	})

	t.Run("prop bet without game", func(t *testing.T) {
		bet := testutil.CreateTestBet(100, 1, nil)
		bet.BetType = models.BetTypeProp
		bet.Selection = "player scores twice"
		require.NoError(t, repo.Create(ctx, bet))

		got, err := repo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.GameID)
	})

	t.Run("parlay legs survive the round trip", func(t *testing.T) {
		bet := testutil.CreateTestBet(100, 1, nil)
		bet.BetType = models.BetTypeParlay
		bet.Selection = "Chiefs ML / Lakers +3.5"
		bet.Odds = decimal.NewFromInt(264)
		bet.Legs = []models.BetLeg{
			{Selection: "Chiefs ML", Odds: decimal.NewFromInt(-110)},
			{Selection: "Lakers +3.5", Odds: decimal.NewFromInt(-110)},
		}
		require.NoError(t, repo.Create(ctx, bet))

		got, err := repo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Legs, 2)
		assert.Equal(t, "Chiefs ML", got.Legs[0].Selection)
		assert.True(t, got.Legs[0].Odds.Equal(decimal.NewFromInt(-110)))
		assert.True(t, got.Odds.Equal(decimal.NewFromInt(264)))
	})

	t.Run("straight bet keeps no legs", func(t *testing.T) {
		bet := testutil.CreateTestBet(100, 1, &game.ID)
		require.NoError(t, repo.Create(ctx, bet))

		got, err := repo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Legs)
	})

	t.Run("unknown game rejected", func(t *testing.T) {
		missing := "ev-does-not-exist"
		bet := testutil.CreateTestBet(100, 1, &missing)
		assert.Error(t, repo.Create(ctx, bet))
	})

	t.Run("unknown member rejected", func(t *testing.T) {
		bet := testutil.CreateTestBet(100, 424242, &game.ID)
		assert.Error(t, repo.Create(ctx, bet))
	})
}

func TestBetRepository_Transition(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewBetRepository(testDB.DB)

	seedMember(t, testDB, 200, 2, decimal.NewFromInt(100))

	place := func(t *testing.T) *models.Bet {
		t.Helper()
		bet := testutil.CreateTestBet(200, 2, nil)
		bet.BetType = models.BetTypeProp
		require.NoError(t, repo.Create(ctx, bet))
		return bet
	}

	t.Run("pending to won records result", func(t *testing.T) {
		bet := place(t)
		win := decimal.RequireFromString("4.55")
		require.NoError(t, repo.Transition(ctx, bet.ID, models.BetStatusWon, &win))

		got, err := repo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BetStatusWon, got.Status)
		require.NotNil(t, got.Result)
		assert.True(t, got.Result.Equal(win))
	})

	t.Run("settled bet cannot be settled again", func(t *testing.T) {
		bet := place(t)
		loss := decimal.NewFromInt(-5)
		require.NoError(t, repo.Transition(ctx, bet.ID, models.BetStatusLost, &loss))

		win := decimal.NewFromInt(5)
		err := repo.Transition(ctx, bet.ID, models.BetStatusWon, &win)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)

		got, err := repo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BetStatusLost, got.Status)
	})

	t.Run("pending is not a settlement target", func(t *testing.T) {
		bet := place(t)
		err := repo.Transition(ctx, bet.ID, models.BetStatusPending, nil)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("updated_at advances on settle", func(t *testing.T) {
		bet := place(t)
		created := bet.CreatedAt

		time.Sleep(10 * time.Millisecond)
		result := decimal.Zero
		require.NoError(t, repo.Transition(ctx, bet.ID, models.BetStatusPush, &result))

		got, err := repo.GetByID(ctx, bet.ID)
		require.NoError(t, err)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
		assert.True(t, got.CreatedAt.Equal(created))
	})
}

func TestBetRepository_PendingQueries(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewBetRepository(testDB.DB)

	seedMember(t, testDB, 300, 3, decimal.NewFromInt(100))

	var bets []*models.Bet
	for i := 0; i < 3; i++ {
		bet := testutil.CreateTestBet(300, 3, nil)
		bet.BetType = models.BetTypeProp
		require.NoError(t, repo.Create(ctx, bet))
		bets = append(bets, bet)
	}

	loss := decimal.NewFromInt(-5)
	require.NoError(t, repo.Transition(ctx, bets[0].ID, models.BetStatusLost, &loss))

	t.Run("pending by user excludes settled", func(t *testing.T) {
		pending, err := repo.ListPendingByUser(ctx, 300, 3)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, bets[1].ID, pending[0].ID)
		assert.Equal(t, bets[2].ID, pending[1].ID)
	})

	t.Run("pending older than cutoff", func(t *testing.T) {
		stale, err := repo.ListPendingOlderThan(ctx, time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.Len(t, stale, 2)

		fresh, err := repo.ListPendingOlderThan(ctx, time.Now().Add(-time.Minute))
		require.NoError(t, err)
		assert.Empty(t, fresh)
	})
}

func TestBetRepository_GetRecord(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewBetRepository(testDB.DB)

	seedMember(t, testDB, 400, 4, decimal.NewFromInt(100))

	settle := func(t *testing.T, status models.BetStatus, result string) {
		t.Helper()
		bet := testutil.CreateTestBet(400, 4, nil)
		bet.BetType = models.BetTypeProp
		require.NoError(t, repo.Create(ctx, bet))
		if status != models.BetStatusPending {
			r := decimal.RequireFromString(result)
			require.NoError(t, repo.Transition(ctx, bet.ID, status, &r))
		}
	}

	settle(t, models.BetStatusWon, "4.55")
	settle(t, models.BetStatusWon, "4.55")
	settle(t, models.BetStatusLost, "-5")
	settle(t, models.BetStatusPush, "0")
	settle(t, models.BetStatusPending, "")

	record, err := repo.GetRecord(ctx, 400, 4)
	require.NoError(t, err)

	assert.Equal(t, 5, record.TotalBets)
	assert.Equal(t, 2, record.Won)
	assert.Equal(t, 1, record.Lost)
	assert.Equal(t, 1, record.Push)
	assert.Equal(t, 1, record.Pending)
	assert.True(t, record.NetUnits.Equal(decimal.RequireFromString("4.10")),
		"net units %s", record.NetUnits)
	assert.InDelta(t, 66.66, record.WinPercentage(), 0.01)

	t.Run("empty record", func(t *testing.T) {
		seedMember(t, testDB, 400, 44, decimal.NewFromInt(100))
		record, err := repo.GetRecord(ctx, 400, 44)
		require.NoError(t, err)
		assert.Zero(t, record.TotalBets)
		assert.True(t, record.NetUnits.IsZero())
	})
}
