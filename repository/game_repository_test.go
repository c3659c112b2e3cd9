package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookie/models"
	"bookie/repository/testutil"
	"bookie/service"
)

func TestGameRepository_Upsert(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewGameRepository(testDB.DB)

	t.Run("insert then fetch", func(t *testing.T) {
		game := testutil.CreateTestGameWithOdds("ev-1", "NBA", -150, 130)
		require.NoError(t, repo.Upsert(ctx, game))

		got, err := repo.GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, "NBA", got.League)
		assert.Equal(t, models.GameStatusScheduled, got.Status)
		assert.Nil(t, got.Score)
		require.NotNil(t, got.Odds)
		assert.Equal(t, float64(-150), got.Odds.HomeML)
		assert.Equal(t, float64(130), got.Odds.AwayML)
	})

	t.Run("second upsert updates in place", func(t *testing.T) {
		game := testutil.CreateTestGame("ev-2", "NHL")
		require.NoError(t, repo.Upsert(ctx, game))

		game.StartTime = game.StartTime.Add(2 * time.Hour)
		game.Odds = &models.Odds{HomeML: -110, AwayML: -110}
		require.NoError(t, repo.Upsert(ctx, game))

		got, err := repo.GetByID(ctx, "ev-2")
		require.NoError(t, err)
		require.NotNil(t, got.Odds)
		assert.True(t, got.StartTime.Equal(game.StartTime))
	})

	t.Run("missing game is nil", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "ev-none")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestGameRepository_SetScore(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewGameRepository(testDB.DB)

	game := testutil.CreateTestGame("ev-10", "MLB")
	require.NoError(t, repo.Upsert(ctx, game))

	score := &models.Score{Home: 7, Away: 3}
	require.NoError(t, repo.SetScore(ctx, "ev-10", models.GameStatusFinal, score))

	got, err := repo.GetByID(ctx, "ev-10")
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusFinal, got.Status)
	require.NotNil(t, got.Score)
	assert.Equal(t, 7, got.Score.Home)
	assert.Equal(t, 3, got.Score.Away)
	assert.True(t, got.Final())

	t.Run("unknown game", func(t *testing.T) {
		err := repo.SetScore(ctx, "ev-none", models.GameStatusFinal, score)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestGameRepository_ListUpcoming(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewGameRepository(testDB.DB)

	later := testutil.CreateTestGame("ev-21", "NFL")
	later.StartTime = time.Now().Add(48 * time.Hour).UTC()
	require.NoError(t, repo.Upsert(ctx, later))

	sooner := testutil.CreateTestGame("ev-20", "NFL")
	sooner.StartTime = time.Now().Add(2 * time.Hour).UTC()
	require.NoError(t, repo.Upsert(ctx, sooner))

	otherLeague := testutil.CreateTestGame("ev-22", "NBA")
	require.NoError(t, repo.Upsert(ctx, otherLeague))

	finished := testutil.CreateTestGame("ev-23", "NFL")
	require.NoError(t, repo.Upsert(ctx, finished))
	require.NoError(t, repo.SetScore(ctx, "ev-23", models.GameStatusFinal, &models.Score{Home: 1}))

	games, err := repo.ListUpcoming(ctx, "NFL", 10)
	require.NoError(t, err)
	require.Len(t, games, 2)

	// Soonest start first
	assert.Equal(t, "ev-20", games[0].ID)
	assert.Equal(t, "ev-21", games[1].ID)
}
