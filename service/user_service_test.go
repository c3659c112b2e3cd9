package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookie/config"
	"bookie/events"
	"bookie/models"
)

func TestUserService_GetOrCreateUser_Existing(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, _ := newMockedUow(t)
	mockUserRepo := new(MockUserRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil, nil)

	svc := NewUserService(mockFactory, nil)

	existing := &models.User{DiscordID: 123, Username: "alice", Balance: decimal.NewFromInt(1000)}
	mockUserRepo.On("GetByDiscordID", ctx, int64(123)).Return(existing, nil)

	user, err := svc.GetOrCreateUser(ctx, 123, "alice")
	require.NoError(t, err)
	assert.Equal(t, existing, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_GetOrCreateUser_RenamedOnDiscord(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, _ := newMockedUow(t)
	mockUserRepo := new(MockUserRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil, nil)

	svc := NewUserService(mockFactory, nil)

	mockUserRepo.On("GetByDiscordID", ctx, int64(123)).Return(&models.User{
		DiscordID: 123, Username: "oldname",
	}, nil)
	mockUserRepo.On("UpdateUsername", ctx, int64(123), "newname").Return(nil)

	user, err := svc.GetOrCreateUser(ctx, 123, "newname")
	require.NoError(t, err)
	assert.Equal(t, "newname", user.Username)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_New(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, publisher := newMockedUow(t)
	mockUserRepo := new(MockUserRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil, nil)

	svc := NewUserService(mockFactory, nil)

	starting := config.Get().StartingBalance
	created := &models.User{DiscordID: 456, Username: "bob", Balance: starting}
	mockUserRepo.On("GetByDiscordID", ctx, int64(456)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(456), "bob", starting).Return(created, nil)

	user, err := svc.GetOrCreateUser(ctx, 456, "bob")
	require.NoError(t, err)
	assert.Equal(t, created, user)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.EventTypeUserCreated, publisher.Events[0].Type())
}

func TestUserService_EnsureMembership_SeedsNewMember(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, publisher := newMockedUow(t)
	mockUserRepo := new(MockUserRepository)
	mockGuildRepo := new(MockGuildRepository)
	mockGuildUserRepo := new(MockGuildUserRepository)
	mockTxRepo := new(MockTransactionRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGuildRepo, mockGuildUserRepo, nil, nil, mockTxRepo, nil, nil)

	svc := NewUserService(mockFactory, nil)

	startingUnits := config.Get().StartingUnits
	mockUserRepo.On("GetByDiscordID", ctx, int64(1)).Return(&models.User{DiscordID: 1, Username: "alice"}, nil)
	mockGuildRepo.On("Upsert", ctx, int64(10), "My Guild").Return(&models.Guild{GuildID: 10, Name: "My Guild"}, nil)
	mockGuildUserRepo.On("Get", ctx, int64(10), int64(1)).Return(nil, nil)
	mockGuildUserRepo.On("Create", ctx, int64(10), int64(1), startingUnits).Return(&models.GuildUser{
		GuildID: 10, UserID: 1, UnitsBalance: startingUnits,
	}, nil)
	mockTxRepo.On("Record", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Type == models.TransactionTypeInitial && tx.Amount.Equal(startingUnits)
	})).Return(nil)

	gu, err := svc.EnsureMembership(ctx, 10, "My Guild", 1, "alice")
	require.NoError(t, err)
	assert.True(t, gu.UnitsBalance.Equal(startingUnits))

	var sawUnitsChanged bool
	for _, e := range publisher.Events {
		if e.Type() == events.EventTypeUnitsChanged {
			sawUnitsChanged = true
		}
	}
	assert.True(t, sawUnitsChanged)
	mockTxRepo.AssertExpectations(t)
}

func TestUserService_EnsureMembership_Idempotent(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, _ := newMockedUow(t)
	mockUserRepo := new(MockUserRepository)
	mockGuildRepo := new(MockGuildRepository)
	mockGuildUserRepo := new(MockGuildUserRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGuildRepo, mockGuildUserRepo, nil, nil, nil, nil, nil)

	svc := NewUserService(mockFactory, nil)

	existing := &models.GuildUser{GuildID: 10, UserID: 1, UnitsBalance: decimal.NewFromInt(42)}
	mockUserRepo.On("GetByDiscordID", ctx, int64(1)).Return(&models.User{DiscordID: 1, Username: "alice"}, nil)
	mockGuildRepo.On("Upsert", ctx, int64(10), "My Guild").Return(&models.Guild{GuildID: 10}, nil)
	mockGuildUserRepo.On("Get", ctx, int64(10), int64(1)).Return(existing, nil)

	gu, err := svc.EnsureMembership(ctx, 10, "My Guild", 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, existing, gu)
	mockGuildUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_AdjustUnits(t *testing.T) {
	ctx := context.Background()

	t.Run("debit records negative entry", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockGuildUserRepo := new(MockGuildUserRepository)
		mockTxRepo := new(MockTransactionRepository)
		mockUoW.SetRepositories(nil, nil, mockGuildUserRepo, nil, nil, mockTxRepo, nil, nil)
		svc := NewUserService(mockFactory, nil)

		amount := decimal.NewFromInt(-10)
		mockGuildUserRepo.On("Get", ctx, int64(10), int64(1)).Return(&models.GuildUser{
			GuildID: 10, UserID: 1, UnitsBalance: decimal.NewFromInt(100),
		}, nil).Once()
		mockGuildUserRepo.On("DebitUnits", ctx, int64(10), int64(1), decimal.NewFromInt(10)).Return(nil)
		mockTxRepo.On("Record", ctx, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Amount.Equal(amount) && tx.Type == models.TransactionTypeAdjust && tx.Description == "penalty"
		})).Return(nil)
		mockGuildUserRepo.On("Get", ctx, int64(10), int64(1)).Return(&models.GuildUser{
			GuildID: 10, UserID: 1, UnitsBalance: decimal.NewFromInt(90),
		}, nil).Once()

		gu, err := svc.AdjustUnits(ctx, 10, 1, amount, "penalty")
		require.NoError(t, err)
		assert.True(t, gu.UnitsBalance.Equal(decimal.NewFromInt(90)))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		svc := NewUserService(new(MockUnitOfWorkFactory), nil)
		_, err := svc.AdjustUnits(ctx, 10, 1, decimal.Zero, "nothing")
		assert.Error(t, err)
	})

	t.Run("unknown member", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockGuildUserRepo := new(MockGuildUserRepository)
		mockUoW.SetRepositories(nil, nil, mockGuildUserRepo, nil, nil, nil, nil, nil)
		svc := NewUserService(mockFactory, nil)

		mockGuildUserRepo.On("Get", ctx, int64(10), int64(404)).Return(nil, nil)

		_, err := svc.AdjustUnits(ctx, 10, 404, decimal.NewFromInt(5), "bonus")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
