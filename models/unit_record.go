package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitRecord is a monthly snapshot of a user's net units within a guild.
// At most one row exists per (guild, user, year, month).
type UnitRecord struct {
	GuildID   int64           `db:"guild_id"`
	UserID    int64           `db:"user_id"`
	Year      int             `db:"year"`
	Month     int             `db:"month"`
	Units     decimal.Decimal `db:"units"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
