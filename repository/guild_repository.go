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

type guildRepository struct {
	q Queryable
}

// NewGuildRepository creates a guild repository backed by the connection pool.
func NewGuildRepository(db *database.DB) service.GuildRepository {
	return &guildRepository{q: db.Pool}
}

func newGuildRepositoryWithTx(tx pgx.Tx) service.GuildRepository {
	return &guildRepository{q: tx}
}

func (r *guildRepository) GetByGuildID(ctx context.Context, guildID int64) (*models.Guild, error) {
	query := `
		SELECT guild_id, name, created_at, updated_at
		FROM guilds
		WHERE guild_id = $1`

	var guild models.Guild
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&guild.GuildID,
		&guild.Name,
		&guild.CreatedAt,
		&guild.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild %d: %w", guildID, err)
	}

	return &guild, nil
}

func (r *guildRepository) List(ctx context.Context) ([]*models.Guild, error) {
	query := `SELECT guild_id, name, created_at, updated_at FROM guilds ORDER BY guild_id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query guilds: %w", err)
	}
	defer rows.Close()

	var guilds []*models.Guild
	for rows.Next() {
		var guild models.Guild
		if err := rows.Scan(&guild.GuildID, &guild.Name, &guild.CreatedAt, &guild.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guild: %w", err)
		}
		guilds = append(guilds, &guild)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read guild rows: %w", err)
	}

	return guilds, nil
}

func (r *guildRepository) Upsert(ctx context.Context, guildID int64, name string) (*models.Guild, error) {
	query := `
		INSERT INTO guilds (guild_id, name)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING guild_id, name, created_at, updated_at`

	var guild models.Guild
	err := r.q.QueryRow(ctx, query, guildID, name).Scan(
		&guild.GuildID,
		&guild.Name,
		&guild.CreatedAt,
		&guild.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert guild %d: %w", guildID, err)
	}

	return &guild, nil
}
