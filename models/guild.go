package models

import "time"

// Guild represents a Discord server registered as a betting tenant
type Guild struct {
	GuildID   int64     `db:"guild_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
