package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the reason a balance changed
type TransactionType string

const (
	TransactionTypeInitial   TransactionType = "initial"
	TransactionTypeBetPlaced TransactionType = "bet_placed"
	TransactionTypeBetWon    TransactionType = "bet_won"
	TransactionTypeBetPush   TransactionType = "bet_push"
	TransactionTypeBetRefund TransactionType = "bet_refund"
	TransactionTypeAdjust    TransactionType = "adjustment"
)

// Transaction represents an append-only ledger entry.
// Amount sign encodes credit (positive) or debit (negative).
type Transaction struct {
	ID          int64           `db:"id"`
	GuildID     int64           `db:"guild_id"`
	UserID      int64           `db:"user_id"`
	Amount      decimal.Decimal `db:"amount"`
	Type        TransactionType `db:"type"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}
