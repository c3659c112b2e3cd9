package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bookie/database"
	"bookie/models"
	"bookie/service"
)

type betRepository struct {
	q Queryable
}

// NewBetRepository creates a bet repository backed by the connection pool.
func NewBetRepository(db *database.DB) service.BetRepository {
	return &betRepository{q: db.Pool}
}

func newBetRepositoryWithTx(tx pgx.Tx) service.BetRepository {
	return &betRepository{q: tx}
}

const betColumns = `id, guild_id, user_id, game_id, bet_type, selection, units, odds, legs, status, result, created_at, updated_at`

func (r *betRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (guild_id, user_id, game_id, bet_type, selection, units, odds, legs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, updated_at`

	var legsJSON []byte
	if len(bet.Legs) > 0 {
		var err error
		legsJSON, err = json.Marshal(bet.Legs)
		if err != nil {
			return fmt.Errorf("failed to marshal bet legs: %w", err)
		}
	}

	err := r.q.QueryRow(ctx, query,
		bet.GuildID, bet.UserID, bet.GameID,
		bet.BetType, bet.Selection, bet.Units, bet.Odds, legsJSON,
	).Scan(&bet.ID, &bet.Status, &bet.CreatedAt, &bet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

func (r *betRepository) GetByID(ctx context.Context, id int64) (*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	bet, err := scanBet(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", id, err)
	}

	return bet, nil
}

func (r *betRepository) ListPendingByUser(ctx context.Context, guildID, userID int64) ([]*models.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE guild_id = $1 AND user_id = $2 AND status = $3
		ORDER BY created_at`

	return r.list(ctx, query, guildID, userID, models.BetStatusPending)
}

func (r *betRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at`

	return r.list(ctx, query, models.BetStatusPending, cutoff)
}

// Transition guards on status = pending so a bet settled by a concurrent
// caller is not settled twice.
func (r *betRepository) Transition(ctx context.Context, id int64, to models.BetStatus, result *decimal.Decimal) error {
	if !models.BetStatusPending.CanTransitionTo(to) {
		return service.ErrInvalidTransition
	}

	query := `
		UPDATE bets
		SET status = $2, result = $3
		WHERE id = $1 AND status = $4`

	tag, err := r.q.Exec(ctx, query, id, to, result, models.BetStatusPending)
	if err != nil {
		return fmt.Errorf("failed to transition bet %d to %s: %w", id, to, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrInvalidTransition
	}
	return nil
}

func (r *betRepository) GetRecord(ctx context.Context, guildID, userID int64) (*models.BetRecord, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'won'),
			COUNT(*) FILTER (WHERE status = 'lost'),
			COUNT(*) FILTER (WHERE status = 'push'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(result), 0),
			COALESCE(SUM(units) FILTER (WHERE status <> 'cancelled' AND status <> 'expired'), 0)
		FROM bets
		WHERE guild_id = $1 AND user_id = $2`

	record := models.BetRecord{UserID: userID}
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(
		&record.TotalBets,
		&record.Won,
		&record.Lost,
		&record.Push,
		&record.Pending,
		&record.NetUnits,
		&record.TotalStaked,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet record for %d/%d: %w", guildID, userID, err)
	}

	return &record, nil
}

func (r *betRepository) list(ctx context.Context, query string, args ...any) ([]*models.Bet, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bet rows: %w", err)
	}

	return bets, nil
}

func scanBet(row pgx.Row) (*models.Bet, error) {
	var bet models.Bet
	var legsJSON []byte
	err := row.Scan(
		&bet.ID,
		&bet.GuildID,
		&bet.UserID,
		&bet.GameID,
		&bet.BetType,
		&bet.Selection,
		&bet.Units,
		&bet.Odds,
		&legsJSON,
		&bet.Status,
		&bet.Result,
		&bet.CreatedAt,
		&bet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(legsJSON) > 0 {
		if err := json.Unmarshal(legsJSON, &bet.Legs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bet legs: %w", err)
		}
	}

	return &bet, nil
}
