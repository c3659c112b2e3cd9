package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookie/database"
	"bookie/models"
	"bookie/service"
)

type transactionRepository struct {
	q Queryable
}

// NewTransactionRepository creates a ledger repository backed by the
// connection pool.
func NewTransactionRepository(db *database.DB) service.TransactionRepository {
	return &transactionRepository{q: db.Pool}
}

func newTransactionRepositoryWithTx(tx pgx.Tx) service.TransactionRepository {
	return &transactionRepository{q: tx}
}

func (r *transactionRepository) Record(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (guild_id, user_id, amount, type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		tx.GuildID, tx.UserID, tx.Amount, tx.Type, tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	return nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, guildID, userID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, guild_id, user_id, amount, type, description, created_at
		FROM transactions
		WHERE guild_id = $1 AND user_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	rows, err := r.q.Query(ctx, query, guildID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for %d/%d: %w", guildID, userID, err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}

	return txs, nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.GuildID,
		&tx.UserID,
		&tx.Amount,
		&tx.Type,
		&tx.Description,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
