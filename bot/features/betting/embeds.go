package betting

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"bookie/bot/common"
	"bookie/models"
)

func betPlacedEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, bet *models.Bet) *discordgo.MessageEmbed {
	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎟️ Bet #%d placed", bet.ID),
		Color: 0x00C851,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bettor", Value: displayName, Inline: true},
			{Name: "Type", Value: string(bet.BetType), Inline: true},
			{Name: "Selection", Value: bet.Selection, Inline: true},
			{Name: "Stake", Value: common.FormatUnits(bet.Units) + " units", Inline: true},
			{Name: "Odds", Value: common.FormatAmericanOdds(bet.Odds), Inline: true},
		},
	}
	if bet.GameID != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Game", Value: fmt.Sprintf("`%s`", *bet.GameID), Inline: true,
		})
	}
	if len(bet.Legs) > 0 {
		var body strings.Builder
		for n, leg := range bet.Legs {
			body.WriteString(fmt.Sprintf("%d. %s %s\n", n+1, leg.Selection, common.FormatAmericanOdds(leg.Odds)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Legs", Value: body.String(),
		})
	}
	return embed
}

func pendingEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, bets []*models.Bet) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "⏳ Pending bets",
		Color: 0xFFBB33,
	}

	if len(bets) == 0 {
		embed.Description = "No pending bets. Place one with /bet place."
		return embed
	}

	var body strings.Builder
	for _, bet := range bets {
		body.WriteString(fmt.Sprintf("**#%d** %s %s — %s units at %s, placed %s\n",
			bet.ID,
			bet.BetType,
			bet.Selection,
			common.FormatUnits(bet.Units),
			common.FormatAmericanOdds(bet.Odds),
			common.FormatDiscordTimestamp(bet.CreatedAt, "R")))
	}
	embed.Description = body.String()
	return embed
}
