package games

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"bookie/bot/common"
	"bookie/leagues"
	"bookie/models"
)

func upcomingEmbed(league string, lg leagues.League, games []*models.Game) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📅 Upcoming %s games", lg.DisplayName),
		Color: 0x0096FF,
	}

	if len(games) == 0 {
		embed.Description = "No upcoming games on the board."
		return embed
	}

	for _, game := range games {
		name := fmt.Sprintf("%s @ %s", game.AwayTeam, game.HomeTeam)
		var lines []string
		lines = append(lines, common.FormatDiscordTimestamp(game.StartTime, "f"))
		if game.Odds != nil {
			lines = append(lines, fmt.Sprintf("ML %s / %s",
				common.FormatAmericanOdds(decimal.NewFromFloat(game.Odds.HomeML)),
				common.FormatAmericanOdds(decimal.NewFromFloat(game.Odds.AwayML))))
		}
		lines = append(lines, fmt.Sprintf("`%s`", game.ID))

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: strings.Join(lines, "\n"),
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: "Bet with /bet place game:<id>",
	}
	return embed
}

func rosterEmbed(league string, lg leagues.League) *discordgo.MessageEmbed {
	teams := leagues.Teams(league)
	var body strings.Builder
	for _, team := range teams {
		body.WriteString("• ")
		body.WriteString(team)
		body.WriteString("\n")
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s (%s)", lg.DisplayName, lg.Sport),
		Description: body.String(),
		Color:       0x0096FF,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "No live schedule for this league; place prop bets on these teams",
		},
	}
}
