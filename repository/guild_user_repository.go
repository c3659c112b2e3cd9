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

type guildUserRepository struct {
	q Queryable
}

// NewGuildUserRepository creates a guild membership repository backed by the
// connection pool.
func NewGuildUserRepository(db *database.DB) service.GuildUserRepository {
	return &guildUserRepository{q: db.Pool}
}

func newGuildUserRepositoryWithTx(tx pgx.Tx) service.GuildUserRepository {
	return &guildUserRepository{q: tx}
}

func (r *guildUserRepository) Get(ctx context.Context, guildID, userID int64) (*models.GuildUser, error) {
	query := `
		SELECT guild_id, user_id, units_balance, lifetime_units, created_at, updated_at
		FROM guild_users
		WHERE guild_id = $1 AND user_id = $2`

	var gu models.GuildUser
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(
		&gu.GuildID,
		&gu.UserID,
		&gu.UnitsBalance,
		&gu.LifetimeUnits,
		&gu.CreatedAt,
		&gu.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild user %d/%d: %w", guildID, userID, err)
	}

	return &gu, nil
}

func (r *guildUserRepository) Create(ctx context.Context, guildID, userID int64, startingUnits decimal.Decimal) (*models.GuildUser, error) {
	query := `
		INSERT INTO guild_users (guild_id, user_id, units_balance)
		VALUES ($1, $2, $3)
		RETURNING guild_id, user_id, units_balance, lifetime_units, created_at, updated_at`

	var gu models.GuildUser
	err := r.q.QueryRow(ctx, query, guildID, userID, startingUnits).Scan(
		&gu.GuildID,
		&gu.UserID,
		&gu.UnitsBalance,
		&gu.LifetimeUnits,
		&gu.CreatedAt,
		&gu.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create guild user %d/%d: %w", guildID, userID, err)
	}

	return &gu, nil
}

func (r *guildUserRepository) CreditUnits(ctx context.Context, guildID, userID int64, amount decimal.Decimal) error {
	query := `
		UPDATE guild_users
		SET units_balance = units_balance + $3
		WHERE guild_id = $1 AND user_id = $2`

	tag, err := r.q.Exec(ctx, query, guildID, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to credit units for %d/%d: %w", guildID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

// DebitUnits subtracts in a single guarded statement so concurrent debits
// cannot drive the balance below zero.
func (r *guildUserRepository) DebitUnits(ctx context.Context, guildID, userID int64, amount decimal.Decimal) error {
	query := `
		UPDATE guild_users
		SET units_balance = units_balance - $3
		WHERE guild_id = $1 AND user_id = $2 AND units_balance >= $3`

	tag, err := r.q.Exec(ctx, query, guildID, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit units for %d/%d: %w", guildID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrInsufficientUnits
	}
	return nil
}

func (r *guildUserRepository) AddLifetimeUnits(ctx context.Context, guildID, userID int64, delta decimal.Decimal) error {
	query := `
		UPDATE guild_users
		SET lifetime_units = lifetime_units + $3
		WHERE guild_id = $1 AND user_id = $2`

	tag, err := r.q.Exec(ctx, query, guildID, userID, delta)
	if err != nil {
		return fmt.Errorf("failed to add lifetime units for %d/%d: %w", guildID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *guildUserRepository) Remove(ctx context.Context, guildID, userID int64) error {
	query := `DELETE FROM guild_users WHERE guild_id = $1 AND user_id = $2`

	if _, err := r.q.Exec(ctx, query, guildID, userID); err != nil {
		return fmt.Errorf("failed to remove guild user %d/%d: %w", guildID, userID, err)
	}
	return nil
}

func (r *guildUserRepository) Leaderboard(ctx context.Context, guildID int64, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT gu.user_id, u.username, gu.units_balance, gu.lifetime_units
		FROM guild_users gu
		JOIN users u ON u.discord_id = gu.user_id
		WHERE gu.guild_id = $1
		ORDER BY gu.units_balance DESC, gu.user_id
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	rank := 0
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.UnitsBalance, &entry.LifetimeUnits); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		rank++
		entry.Rank = rank
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard rows: %w", err)
	}

	return entries, nil
}
