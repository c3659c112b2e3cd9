package models

import (
	"fmt"
	"time"
)

// Capper represents a designated user whose picks are tracked for
// leaderboards within a guild
type Capper struct {
	GuildID     int64     `db:"guild_id"`
	UserID      int64     `db:"user_id"`
	DisplayName string    `db:"display_name"`
	BannerColor string    `db:"banner_color"`
	BetWon      int       `db:"bet_won"`
	BetLoss     int       `db:"bet_loss"`
	BetPush     int       `db:"bet_push"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Record formats the capper's win-loss-push record
func (c *Capper) Record() string {
	return fmt.Sprintf("%d-%d-%d", c.BetWon, c.BetLoss, c.BetPush)
}

// RecordTotal is the number of settled bets counted toward the record
func (c *Capper) RecordTotal() int {
	return c.BetWon + c.BetLoss + c.BetPush
}
