package models

import "time"

// GameStatus mirrors what the sports-data provider reports.
// The column is free text; these are the values the bot itself writes.
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusLive      GameStatus = "live"
	GameStatusFinal     GameStatus = "final"
	GameStatusCancelled GameStatus = "cancelled"
)

// Score holds the structured score stored in the games.score JSONB column
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Odds holds the structured odds stored in the games.odds JSONB column.
// Values are American odds keyed by market side.
type Odds struct {
	HomeML float64 `json:"home_ml,omitempty"`
	AwayML float64 `json:"away_ml,omitempty"`
	Spread float64 `json:"spread,omitempty"`
	Total  float64 `json:"total,omitempty"`
}

// Game represents a sporting event ingested from the data provider
type Game struct {
	ID        string     `db:"id"` // provider event ID
	League    string     `db:"league"`
	HomeTeam  string     `db:"home_team"`
	AwayTeam  string     `db:"away_team"`
	StartTime time.Time  `db:"start_time"`
	Status    GameStatus `db:"status"`
	Score     *Score     `db:"score"`
	Odds      *Odds      `db:"odds"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// Final reports whether the game has finished
func (g *Game) Final() bool {
	return g.Status == GameStatusFinal
}
