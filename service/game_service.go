package service

import (
	"context"
	"fmt"

	"bookie/leagues"
	"bookie/models"
)

// gameService implements the GameService interface
type gameService struct {
	uowFactory UnitOfWorkFactory
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
	}
}

func (s *gameService) UpsertGame(ctx context.Context, game *models.Game) error {
	// Games store the registry name, not the display name, so reads and
	// writes agree on the key.
	if _, ok := leagues.Lookup(game.League); !ok {
		return fmt.Errorf("league %q: %w", game.League, ErrUnknownLeague)
	}
	if game.ID == "" {
		return fmt.Errorf("game ID is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.GameRepository().Upsert(ctx, game); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *gameService) UpcomingGames(ctx context.Context, league string, limit int) ([]*models.Game, error) {
	if _, ok := leagues.Lookup(league); !ok {
		return nil, fmt.Errorf("league %q: %w", league, ErrUnknownLeague)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	games, err := uow.GameRepository().ListUpcoming(ctx, league, limit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return games, nil
}

func (s *gameService) RecordScore(ctx context.Context, gameID string, status models.GameStatus, score *models.Score) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.GameRepository().SetScore(ctx, gameID, status, score); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
