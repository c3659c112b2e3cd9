package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a Discord user known globally across guilds
type User struct {
	DiscordID int64           `db:"discord_id"`
	Username  string          `db:"username"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// GuildUser represents a user's membership and unit economy within a guild
type GuildUser struct {
	GuildID       int64           `db:"guild_id"`
	UserID        int64           `db:"user_id"`
	UnitsBalance  decimal.Decimal `db:"units_balance"`
	LifetimeUnits decimal.Decimal `db:"lifetime_units"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
