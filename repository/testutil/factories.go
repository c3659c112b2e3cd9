package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"bookie/models"
)

// CreateTestGame creates a scheduled test game with default values
func CreateTestGame(id, league string) *models.Game {
	return &models.Game{
		ID:        id,
		League:    league,
		HomeTeam:  "Home Team",
		AwayTeam:  "Away Team",
		StartTime: time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
		Status:    models.GameStatusScheduled,
	}
}

// CreateTestGameWithOdds creates a test game carrying a moneyline
func CreateTestGameWithOdds(id, league string, homeML, awayML float64) *models.Game {
	game := CreateTestGame(id, league)
	game.Odds = &models.Odds{HomeML: homeML, AwayML: awayML}
	return game
}

// CreateTestBet creates a pending moneyline bet with default values
func CreateTestBet(guildID, userID int64, gameID *string) *models.Bet {
	return &models.Bet{
		GuildID:   guildID,
		UserID:    userID,
		GameID:    gameID,
		BetType:   models.BetTypeMoneyline,
		Selection: "Home Team",
		Units:     decimal.NewFromInt(5),
		Odds:      decimal.NewFromFloat(-110),
	}
}

// CreateTestTransaction creates a signed ledger entry
func CreateTestTransaction(guildID, userID int64, amount decimal.Decimal, txType models.TransactionType) *models.Transaction {
	return &models.Transaction{
		GuildID:     guildID,
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: "test transaction",
	}
}

// CreateTestUnitRecord creates a monthly record for the given period
func CreateTestUnitRecord(guildID, userID int64, year, month int, units decimal.Decimal) *models.UnitRecord {
	return &models.UnitRecord{
		GuildID: guildID,
		UserID:  userID,
		Year:    year,
		Month:   month,
		Units:   units,
	}
}

// CreateTestCapper creates a capper profile with the default banner color
func CreateTestCapper(guildID, userID int64, displayName string) *models.Capper {
	return &models.Capper{
		GuildID:     guildID,
		UserID:      userID,
		DisplayName: displayName,
		BannerColor: "#0096FF",
	}
}
