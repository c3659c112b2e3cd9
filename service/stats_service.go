package service

import (
	"context"
	"fmt"

	"bookie/models"
)

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

func (s *statsService) Leaderboard(ctx context.Context, guildID int64, limit int) ([]*models.LeaderboardEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.GuildUserRepository().Leaderboard(ctx, guildID, limit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entries, nil
}

func (s *statsService) BetRecord(ctx context.Context, guildID, userID int64) (*models.BetRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	record, err := uow.BetRepository().GetRecord(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return record, nil
}

// MonthlyRecord returns the member's record for the period, or an all-zero
// record when they have no settled bets that month.
func (s *statsService) MonthlyRecord(ctx context.Context, guildID, userID int64, year, month int) (*models.UnitRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	record, err := uow.UnitRecordRepository().Get(ctx, guildID, userID, year, month)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &models.UnitRecord{
			GuildID: guildID,
			UserID:  userID,
			Year:    year,
			Month:   month,
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return record, nil
}

func (s *statsService) MonthlyWinners(ctx context.Context, year, month int) (map[int64]*models.UnitRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guilds, err := uow.GuildRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	winners := make(map[int64]*models.UnitRecord)
	for _, guild := range guilds {
		records, err := uow.UnitRecordRepository().ListByPeriod(ctx, guild.GuildID, year, month)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			// ListByPeriod orders by units descending
			winners[guild.GuildID] = records[0]
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return winners, nil
}

func (s *statsService) MonthlyLeaderboard(ctx context.Context, guildID int64, year, month int) ([]*models.UnitRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.UnitRecordRepository().ListByPeriod(ctx, guildID, year, month)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return records, nil
}
