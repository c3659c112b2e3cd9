package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookie/database"
	"bookie/models"
	"bookie/service"
)

type capperRepository struct {
	q Queryable
}

// NewCapperRepository creates a capper repository backed by the connection
// pool.
func NewCapperRepository(db *database.DB) service.CapperRepository {
	return &capperRepository{q: db.Pool}
}

func newCapperRepositoryWithTx(tx pgx.Tx) service.CapperRepository {
	return &capperRepository{q: tx}
}

const capperColumns = `guild_id, user_id, display_name, banner_color, bet_won, bet_loss, bet_push, created_at, updated_at`

func (r *capperRepository) Upsert(ctx context.Context, capper *models.Capper) error {
	query := `
		INSERT INTO cappers (guild_id, user_id, display_name, banner_color)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			banner_color = EXCLUDED.banner_color
		RETURNING ` + capperColumns

	err := scanCapperInto(r.q.QueryRow(ctx, query,
		capper.GuildID, capper.UserID, capper.DisplayName, capper.BannerColor,
	), capper)
	if err != nil {
		return fmt.Errorf("failed to upsert capper %d/%d: %w", capper.GuildID, capper.UserID, err)
	}

	return nil
}

func (r *capperRepository) Get(ctx context.Context, guildID, userID int64) (*models.Capper, error) {
	query := `SELECT ` + capperColumns + ` FROM cappers WHERE guild_id = $1 AND user_id = $2`

	var capper models.Capper
	err := scanCapperInto(r.q.QueryRow(ctx, query, guildID, userID), &capper)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get capper %d/%d: %w", guildID, userID, err)
	}

	return &capper, nil
}

func (r *capperRepository) Delete(ctx context.Context, guildID, userID int64) error {
	query := `DELETE FROM cappers WHERE guild_id = $1 AND user_id = $2`

	tag, err := r.q.Exec(ctx, query, guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete capper %d/%d: %w", guildID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *capperRepository) IncrementResult(ctx context.Context, guildID, userID int64, status models.BetStatus) error {
	var column string
	switch status {
	case models.BetStatusWon:
		column = "bet_won"
	case models.BetStatusLost:
		column = "bet_loss"
	case models.BetStatusPush:
		column = "bet_push"
	default:
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE cappers SET %s = %s + 1
		WHERE guild_id = $1 AND user_id = $2`, column, column)

	if _, err := r.q.Exec(ctx, query, guildID, userID); err != nil {
		return fmt.Errorf("failed to increment %s for capper %d/%d: %w", column, guildID, userID, err)
	}
	return nil
}

func (r *capperRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Capper, error) {
	query := `
		SELECT ` + capperColumns + `
		FROM cappers
		WHERE guild_id = $1
		ORDER BY bet_won DESC, user_id`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cappers for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var cappers []*models.Capper
	for rows.Next() {
		var capper models.Capper
		if err := scanCapperInto(rows, &capper); err != nil {
			return nil, fmt.Errorf("failed to scan capper: %w", err)
		}
		cappers = append(cappers, &capper)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read capper rows: %w", err)
	}

	return cappers, nil
}

func scanCapperInto(row pgx.Row, capper *models.Capper) error {
	return row.Scan(
		&capper.GuildID,
		&capper.UserID,
		&capper.DisplayName,
		&capper.BannerColor,
		&capper.BetWon,
		&capper.BetLoss,
		&capper.BetPush,
		&capper.CreatedAt,
		&capper.UpdatedAt,
	)
}
