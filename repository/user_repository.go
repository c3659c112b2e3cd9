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

type userRepository struct {
	q Queryable
}

// NewUserRepository creates a user repository backed by the connection pool.
func NewUserRepository(db *database.DB) service.UserRepository {
	return &userRepository{q: db.Pool}
}

func newUserRepositoryWithTx(tx pgx.Tx) service.UserRepository {
	return &userRepository{q: tx}
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	query := `
		SELECT discord_id, username, balance, created_at, updated_at
		FROM users
		WHERE discord_id = $1`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&user.DiscordID,
		&user.Username,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", discordID, err)
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, discordID int64, username string, startingBalance decimal.Decimal) (*models.User, error) {
	query := `
		INSERT INTO users (discord_id, username, balance)
		VALUES ($1, $2, $3)
		RETURNING discord_id, username, balance, created_at, updated_at`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID, username, startingBalance).Scan(
		&user.DiscordID,
		&user.Username,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", discordID, err)
	}

	return &user, nil
}

func (r *userRepository) UpdateUsername(ctx context.Context, discordID int64, username string) error {
	query := `
		UPDATE users SET username = $2
		WHERE discord_id = $1 AND username <> $2`

	if _, err := r.q.Exec(ctx, query, discordID, username); err != nil {
		return fmt.Errorf("failed to update username for user %d: %w", discordID, err)
	}
	return nil
}
