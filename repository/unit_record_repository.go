package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bookie/database"
	"bookie/models"
	"bookie/service"
)

type unitRecordRepository struct {
	q Queryable
}

// NewUnitRecordRepository creates a monthly record repository backed by the
// connection pool.
func NewUnitRecordRepository(db *database.DB) service.UnitRecordRepository {
	return &unitRecordRepository{q: db.Pool}
}

func newUnitRecordRepositoryWithTx(tx pgx.Tx) service.UnitRecordRepository {
	return &unitRecordRepository{q: tx}
}

func (r *unitRecordRepository) Create(ctx context.Context, record *models.UnitRecord) error {
	query := `
		INSERT INTO unit_records (guild_id, user_id, year, month, units)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		record.GuildID, record.UserID, record.Year, record.Month, record.Units,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create unit record for %d/%d %d-%02d: %w",
			record.GuildID, record.UserID, record.Year, record.Month, err)
	}

	return nil
}

func (r *unitRecordRepository) AddUnits(ctx context.Context, guildID, userID int64, year, month int, delta decimal.Decimal) error {
	query := `
		INSERT INTO unit_records (guild_id, user_id, year, month, units)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (guild_id, user_id, year, month)
		DO UPDATE SET units = unit_records.units + EXCLUDED.units`

	if _, err := r.q.Exec(ctx, query, guildID, userID, year, month, delta); err != nil {
		return fmt.Errorf("failed to add units for %d/%d %d-%02d: %w", guildID, userID, year, month, err)
	}
	return nil
}

func (r *unitRecordRepository) Get(ctx context.Context, guildID, userID int64, year, month int) (*models.UnitRecord, error) {
	query := `
		SELECT guild_id, user_id, year, month, units, created_at, updated_at
		FROM unit_records
		WHERE guild_id = $1 AND user_id = $2 AND year = $3 AND month = $4`

	var record models.UnitRecord
	err := r.q.QueryRow(ctx, query, guildID, userID, year, month).Scan(
		&record.GuildID,
		&record.UserID,
		&record.Year,
		&record.Month,
		&record.Units,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit record for %d/%d %d-%02d: %w", guildID, userID, year, month, err)
	}

	return &record, nil
}

func (r *unitRecordRepository) ListByPeriod(ctx context.Context, guildID int64, year, month int) ([]*models.UnitRecord, error) {
	query := `
		SELECT guild_id, user_id, year, month, units, created_at, updated_at
		FROM unit_records
		WHERE guild_id = $1 AND year = $2 AND month = $3
		ORDER BY units DESC, user_id`

	rows, err := r.q.Query(ctx, query, guildID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query unit records for guild %d %d-%02d: %w", guildID, year, month, err)
	}
	defer rows.Close()

	var records []*models.UnitRecord
	for rows.Next() {
		var record models.UnitRecord
		err := rows.Scan(
			&record.GuildID,
			&record.UserID,
			&record.Year,
			&record.Month,
			&record.Units,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read unit record rows: %w", err)
	}

	return records, nil
}
