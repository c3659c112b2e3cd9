package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookie/models"
)

func TestAdminService_AddCapper(t *testing.T) {
	ctx := context.Background()

	t.Run("member becomes capper", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockGuildUserRepo := new(MockGuildUserRepository)
		mockCapperRepo := new(MockCapperRepository)
		mockUoW.SetRepositories(nil, nil, mockGuildUserRepo, nil, nil, nil, nil, mockCapperRepo)
		svc := NewAdminService(mockFactory)

		mockGuildUserRepo.On("Get", ctx, int64(10), int64(1)).Return(&models.GuildUser{GuildID: 10, UserID: 1}, nil)
		mockCapperRepo.On("Upsert", ctx, mock.MatchedBy(func(c *models.Capper) bool {
			return c.GuildID == 10 && c.UserID == 1 && c.DisplayName == "Sharp Tony" && c.BannerColor == DefaultBannerColor
		})).Return(nil)

		capper, err := svc.AddCapper(ctx, 10, 1, "Sharp Tony", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultBannerColor, capper.BannerColor)
	})

	t.Run("bad banner color", func(t *testing.T) {
		svc := NewAdminService(new(MockUnitOfWorkFactory))
		_, err := svc.AddCapper(ctx, 10, 1, "Tony", "blue")
		assert.ErrorContains(t, err, "hex color")
	})

	t.Run("non-member rejected", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockGuildUserRepo := new(MockGuildUserRepository)
		mockUoW.SetRepositories(nil, nil, mockGuildUserRepo, nil, nil, nil, nil, nil)
		svc := NewAdminService(mockFactory)

		mockGuildUserRepo.On("Get", ctx, int64(10), int64(404)).Return(nil, nil)

		_, err := svc.AddCapper(ctx, 10, 404, "Ghost", "#112233")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminService_RemoveGuildUser(t *testing.T) {
	ctx := context.Background()

	t.Run("voids pending bets without refund", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockGuildUserRepo := new(MockGuildUserRepository)
		mockBetRepo := new(MockBetRepository)
		mockCapperRepo := new(MockCapperRepository)
		mockUoW.SetRepositories(nil, nil, mockGuildUserRepo, nil, mockBetRepo, nil, nil, mockCapperRepo)
		svc := NewAdminService(mockFactory)

		mockGuildUserRepo.On("Get", ctx, int64(10), int64(1)).Return(&models.GuildUser{
			GuildID: 10, UserID: 1, UnitsBalance: decimal.NewFromInt(50),
		}, nil)
		pending := []*models.Bet{
			{ID: 5, GuildID: 10, UserID: 1, Units: decimal.NewFromInt(2), Status: models.BetStatusPending},
			{ID: 6, GuildID: 10, UserID: 1, Units: decimal.NewFromInt(3), Status: models.BetStatusPending},
		}
		zeroResult := mock.MatchedBy(func(result *decimal.Decimal) bool {
			return result != nil && result.IsZero()
		})
		mockBetRepo.On("ListPendingByUser", ctx, int64(10), int64(1)).Return(pending, nil)
		mockBetRepo.On("Transition", ctx, int64(5), models.BetStatusCancelled, zeroResult).Return(nil)
		mockBetRepo.On("Transition", ctx, int64(6), models.BetStatusCancelled, zeroResult).Return(nil)
		mockCapperRepo.On("Delete", ctx, int64(10), int64(1)).Return(ErrNotFound)
		mockGuildUserRepo.On("Remove", ctx, int64(10), int64(1)).Return(nil)

		require.NoError(t, svc.RemoveGuildUser(ctx, 10, 1))

		mockBetRepo.AssertExpectations(t)
		mockGuildUserRepo.AssertExpectations(t)
		// Voided stakes stay gone
		mockGuildUserRepo.AssertNotCalled(t, "CreditUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown member", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockGuildUserRepo := new(MockGuildUserRepository)
		mockUoW.SetRepositories(nil, nil, mockGuildUserRepo, nil, nil, nil, nil, nil)
		svc := NewAdminService(mockFactory)

		mockGuildUserRepo.On("Get", ctx, int64(10), int64(404)).Return(nil, nil)

		err := svc.RemoveGuildUser(ctx, 10, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
