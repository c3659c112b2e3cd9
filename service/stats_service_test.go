package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookie/models"
)

func TestStatsService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, _ := newMockedUow(t)
	mockGuildUserRepo := new(MockGuildUserRepository)
	mockUoW.SetRepositories(nil, nil, mockGuildUserRepo, nil, nil, nil, nil, nil)
	svc := NewStatsService(mockFactory)

	entries := []*models.LeaderboardEntry{
		{Rank: 1, UserID: 1, Username: "alice", UnitsBalance: decimal.NewFromInt(140)},
		{Rank: 2, UserID: 2, Username: "bob", UnitsBalance: decimal.NewFromInt(95)},
	}
	mockGuildUserRepo.On("Leaderboard", ctx, int64(10), 10).Return(entries, nil)

	got, err := svc.Leaderboard(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Username)
}

func TestStatsService_MonthlyRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("existing record", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockUnitRecordRepo := new(MockUnitRecordRepository)
		mockUoW.SetRepositories(nil, nil, nil, nil, nil, nil, mockUnitRecordRepo, nil)
		svc := NewStatsService(mockFactory)

		mockUnitRecordRepo.On("Get", ctx, int64(10), int64(1), 2026, 8).
			Return(&models.UnitRecord{GuildID: 10, UserID: 1, Year: 2026, Month: 8, Units: decimal.RequireFromString("4.10")}, nil)

		record, err := svc.MonthlyRecord(ctx, 10, 1, 2026, 8)
		require.NoError(t, err)
		assert.True(t, record.Units.Equal(decimal.RequireFromString("4.10")))
	})

	t.Run("no settled bets yields zero record", func(t *testing.T) {
		mockFactory, mockUoW, _ := newMockedUow(t)
		mockUnitRecordRepo := new(MockUnitRecordRepository)
		mockUoW.SetRepositories(nil, nil, nil, nil, nil, nil, mockUnitRecordRepo, nil)
		svc := NewStatsService(mockFactory)

		mockUnitRecordRepo.On("Get", ctx, int64(10), int64(404), 2026, 8).Return(nil, nil)

		record, err := svc.MonthlyRecord(ctx, 10, 404, 2026, 8)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.True(t, record.Units.IsZero())
		assert.Equal(t, 2026, record.Year)
		assert.Equal(t, 8, record.Month)
	})
}

func TestStatsService_MonthlyWinners(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, _ := newMockedUow(t)
	mockGuildRepo := new(MockGuildRepository)
	mockUnitRecordRepo := new(MockUnitRecordRepository)
	mockUoW.SetRepositories(nil, mockGuildRepo, nil, nil, nil, nil, mockUnitRecordRepo, nil)
	svc := NewStatsService(mockFactory)

	mockGuildRepo.On("List", ctx).Return([]*models.Guild{
		{GuildID: 10, Name: "alpha"},
		{GuildID: 20, Name: "beta"},
	}, nil)
	mockUnitRecordRepo.On("ListByPeriod", ctx, int64(10), 2026, 7).Return([]*models.UnitRecord{
		{GuildID: 10, UserID: 1, Units: decimal.NewFromInt(12)},
		{GuildID: 10, UserID: 2, Units: decimal.NewFromInt(3)},
	}, nil)
	mockUnitRecordRepo.On("ListByPeriod", ctx, int64(20), 2026, 7).Return([]*models.UnitRecord{}, nil)

	winners, err := svc.MonthlyWinners(ctx, 2026, 7)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	require.Contains(t, winners, int64(10))
	assert.Equal(t, int64(1), winners[10].UserID)
}
