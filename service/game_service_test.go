package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookie/models"
)

func TestGameService_UpsertGame(t *testing.T) {
	ctx := context.Background()

	t.Run("known league", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockGameRepo := new(MockGameRepository)
		mockUoW.SetRepositories(nil, nil, nil, mockGameRepo, nil, nil, nil, nil)
		svc := NewGameService(mockFactory)

		game := &models.Game{ID: "ev-1", League: "NFL", HomeTeam: "A", AwayTeam: "B"}
		mockGameRepo.On("Upsert", ctx, game).Return(nil)

		require.NoError(t, svc.UpsertGame(ctx, game))
		mockGameRepo.AssertExpectations(t)
	})

	t.Run("unknown league", func(t *testing.T) {
		svc := NewGameService(new(MockUnitOfWorkFactory))
		err := svc.UpsertGame(ctx, &models.Game{ID: "ev-2", League: "XFL"})
		assert.ErrorIs(t, err, ErrUnknownLeague)
	})

	t.Run("missing game ID", func(t *testing.T) {
		svc := NewGameService(new(MockUnitOfWorkFactory))
		err := svc.UpsertGame(ctx, &models.Game{League: "NFL"})
		assert.ErrorContains(t, err, "game ID")
	})
}

func TestGameService_UpcomingGames(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, _ := newMockedUow(t)
	mockGameRepo := new(MockGameRepository)
	mockUoW.SetRepositories(nil, nil, nil, mockGameRepo, nil, nil, nil, nil)
	svc := NewGameService(mockFactory)

	expected := []*models.Game{{ID: "ev-1", League: "NBA"}}
	mockGameRepo.On("ListUpcoming", ctx, "NBA", 5).Return(expected, nil)

	games, err := svc.UpcomingGames(ctx, "NBA", 5)
	require.NoError(t, err)
	assert.Equal(t, expected, games)

	t.Run("unknown league", func(t *testing.T) {
		_, err := svc.UpcomingGames(ctx, "Quidditch", 5)
		assert.ErrorIs(t, err, ErrUnknownLeague)
	})
}
