package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetStatus represents the lifecycle state of a bet
type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusPush      BetStatus = "push"
	BetStatusCancelled BetStatus = "cancelled"
	BetStatusExpired   BetStatus = "expired"
)

// CanTransitionTo reports whether a status change is allowed.
// The schema stores status as free text; this is the application-level
// state machine that keeps invalid strings out of the column.
func (s BetStatus) CanTransitionTo(target BetStatus) bool {
	if s != BetStatusPending {
		return false // terminal states never change
	}
	switch target {
	case BetStatusWon, BetStatusLost, BetStatusPush, BetStatusCancelled, BetStatusExpired:
		return true
	}
	return false
}

// Terminal reports whether the status accepts no further transitions
func (s BetStatus) Terminal() bool {
	return s != BetStatusPending
}

// BetType identifies the market a bet was placed on
type BetType string

const (
	BetTypeMoneyline BetType = "moneyline"
	BetTypeSpread    BetType = "spread"
	BetTypeTotal     BetType = "total"
	BetTypeProp      BetType = "prop"
	BetTypeParlay    BetType = "parlay"
)

// BetLeg is one selection inside a parlay, stored in the bets.legs JSONB
// column. The parent bet carries the combined price; legs keep their own
// so the slip can be reconstructed.
type BetLeg struct {
	Selection string          `json:"selection"`
	Odds      decimal.Decimal `json:"odds"`
}

// Bet represents a wager on a game by a user within a guild
type Bet struct {
	ID        int64            `db:"id"`
	GuildID   int64            `db:"guild_id"`
	UserID    int64            `db:"user_id"`
	GameID    *string          `db:"game_id"` // nil once the game row is deleted
	BetType   BetType          `db:"bet_type"`
	Selection string           `db:"selection"`
	Units     decimal.Decimal  `db:"units"`
	Odds      decimal.Decimal  `db:"odds"` // combined price for parlays
	Legs      []BetLeg         `db:"legs"` // nil for straight bets
	Status    BetStatus        `db:"status"`
	Result    *decimal.Decimal `db:"result"` // net units won/lost, set on resolution
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
}
