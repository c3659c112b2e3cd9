package models

import "github.com/shopspring/decimal"

// LeaderboardEntry represents a user's row in the guild leaderboard
type LeaderboardEntry struct {
	Rank          int
	UserID        int64
	Username      string
	UnitsBalance  decimal.Decimal
	LifetimeUnits decimal.Decimal
}

// BetRecord is an aggregated win/loss/push record for a user in a guild
type BetRecord struct {
	UserID      int64
	TotalBets   int
	Won         int
	Lost        int
	Push        int
	Pending     int
	NetUnits    decimal.Decimal
	TotalStaked decimal.Decimal
}

// WinPercentage returns the win rate over settled win/loss bets as 0-100
func (r *BetRecord) WinPercentage() float64 {
	settled := r.Won + r.Lost
	if settled == 0 {
		return 0
	}
	return float64(r.Won) / float64(settled) * 100
}
