package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookie/database"
	"bookie/models"
	"bookie/service"
)

type gameRepository struct {
	q Queryable
}

// NewGameRepository creates a game repository backed by the connection pool.
func NewGameRepository(db *database.DB) service.GameRepository {
	return &gameRepository{q: db.Pool}
}

func newGameRepositoryWithTx(tx pgx.Tx) service.GameRepository {
	return &gameRepository{q: tx}
}

func (r *gameRepository) Upsert(ctx context.Context, game *models.Game) error {
	scoreJSON, err := marshalNullable(game.Score)
	if err != nil {
		return fmt.Errorf("failed to marshal score for game %s: %w", game.ID, err)
	}
	oddsJSON, err := marshalNullable(game.Odds)
	if err != nil {
		return fmt.Errorf("failed to marshal odds for game %s: %w", game.ID, err)
	}

	query := `
		INSERT INTO games (id, league, home_team, away_team, start_time, status, score, odds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			league = EXCLUDED.league,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			start_time = EXCLUDED.start_time,
			status = EXCLUDED.status,
			score = EXCLUDED.score,
			odds = EXCLUDED.odds
		RETURNING created_at, updated_at`

	err = r.q.QueryRow(ctx, query,
		game.ID, game.League, game.HomeTeam, game.AwayTeam,
		game.StartTime, game.Status, scoreJSON, oddsJSON,
	).Scan(&game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", game.ID, err)
	}

	return nil
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	query := `
		SELECT id, league, home_team, away_team, start_time, status, score, odds, created_at, updated_at
		FROM games
		WHERE id = $1`

	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}

	return game, nil
}

func (r *gameRepository) ListUpcoming(ctx context.Context, league string, limit int) ([]*models.Game, error) {
	query := `
		SELECT id, league, home_team, away_team, start_time, status, score, odds, created_at, updated_at
		FROM games
		WHERE league = $1 AND status = $2 AND start_time > NOW()
		ORDER BY start_time
		LIMIT $3`

	rows, err := r.q.Query(ctx, query, league, models.GameStatusScheduled, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming games for %s: %w", league, err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game rows: %w", err)
	}

	return games, nil
}

func (r *gameRepository) SetScore(ctx context.Context, id string, status models.GameStatus, score *models.Score) error {
	scoreJSON, err := marshalNullable(score)
	if err != nil {
		return fmt.Errorf("failed to marshal score for game %s: %w", id, err)
	}

	query := `UPDATE games SET status = $2, score = $3 WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, status, scoreJSON)
	if err != nil {
		return fmt.Errorf("failed to set score for game %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func scanGame(row pgx.Row) (*models.Game, error) {
	var game models.Game
	var scoreJSON, oddsJSON []byte

	err := row.Scan(
		&game.ID,
		&game.League,
		&game.HomeTeam,
		&game.AwayTeam,
		&game.StartTime,
		&game.Status,
		&scoreJSON,
		&oddsJSON,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(scoreJSON) > 0 {
		var score models.Score
		if err := json.Unmarshal(scoreJSON, &score); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score: %w", err)
		}
		game.Score = &score
	}
	if len(oddsJSON) > 0 {
		var odds models.Odds
		if err := json.Unmarshal(oddsJSON, &odds); err != nil {
			return nil, fmt.Errorf("failed to unmarshal odds: %w", err)
		}
		game.Odds = &odds
	}

	return &game, nil
}

// marshalNullable keeps absent JSONB columns as SQL NULL instead of the
// string "null".
func marshalNullable(v any) ([]byte, error) {
	switch t := v.(type) {
	case *models.Score:
		if t == nil {
			return nil, nil
		}
	case *models.Odds:
		if t == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
