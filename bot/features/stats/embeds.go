package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"bookie/bot/common"
	"bookie/models"
)

func rankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

func leaderboardEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, entries []*models.LeaderboardEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Units leaderboard",
		Color: 0xFFD700,
	}

	if len(entries) == 0 {
		embed.Description = "Nobody is on the board yet."
		return embed
	}

	var body strings.Builder
	for _, entry := range entries {
		displayName := common.GetDisplayName(s, i.GuildID, fmt.Sprintf("%d", entry.UserID))
		body.WriteString(fmt.Sprintf("%s **%s** — %s units (lifetime %s)\n",
			rankLabel(entry.Rank),
			displayName,
			common.FormatUnits(entry.UnitsBalance),
			common.FormatSignedUnits(entry.LifetimeUnits)))
	}
	embed.Description = body.String()
	return embed
}

func recordEmbed(displayName string, record *models.BetRecord) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s", displayName),
		Color: 0x0096FF,
	}

	if record.TotalBets == 0 {
		embed.Description = "No bets on record."
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Record", Value: common.FormatRecord(record.Won, record.Lost, record.Push), Inline: true},
		{Name: "Win %", Value: fmt.Sprintf("%.1f%%", record.WinPercentage()), Inline: true},
		{Name: "Net units", Value: common.FormatSignedUnits(record.NetUnits), Inline: true},
		{Name: "Pending", Value: fmt.Sprintf("%d", record.Pending), Inline: true},
		{Name: "Total staked", Value: common.FormatUnits(record.TotalStaked), Inline: true},
	}
	return embed
}

func monthlyEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, year, month int, records []*models.UnitRecord) *discordgo.MessageEmbed {
	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📆 %s unit race", period.Format("January 2006")),
		Color: 0xFFD700,
	}

	if len(records) == 0 {
		embed.Description = "No settled bets this month."
		return embed
	}

	var body strings.Builder
	for rank, record := range records {
		displayName := common.GetDisplayName(s, i.GuildID, fmt.Sprintf("%d", record.UserID))
		body.WriteString(fmt.Sprintf("%s **%s** — %s units\n",
			rankLabel(rank+1),
			displayName,
			common.FormatSignedUnits(record.Units)))
	}
	embed.Description = body.String()
	return embed
}
