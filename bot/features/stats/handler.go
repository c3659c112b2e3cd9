package stats

import (
	"context"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"bookie/bot/common"
)

const leaderboardSize = 10

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	entries, err := f.statsService.Leaderboard(ctx, guildID, leaderboardSize)
	if err != nil {
		log.Errorf("Error getting leaderboard for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to retrieve the leaderboard. Please try again.")
		return
	}

	common.RespondWithEmbed(s, i, leaderboardEmbed(s, i, entries), false)
}

// handleRecord shows a member's all-time betting record
func (f *Feature) handleRecord(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	guildID, userID, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Optional target defaults to the caller
	targetID := userID
	targetDiscordID := i.Member.User.ID
	if opts := common.OptionMap(options); opts["user"] != nil {
		user := opts["user"].UserValue(s)
		if user != nil {
			targetDiscordID = user.ID
			if parsed, err := strconv.ParseInt(user.ID, 10, 64); err == nil {
				targetID = parsed
			}
		}
	}

	record, err := f.statsService.BetRecord(ctx, guildID, targetID)
	if err != nil {
		log.Errorf("Error getting bet record for %d/%d: %v", guildID, targetID, err)
		common.RespondWithError(s, i, "Unable to retrieve stats. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, targetDiscordID)
	common.RespondWithEmbed(s, i, recordEmbed(displayName, record), false)
}

// handleMonthly shows the per-month unit race
func (f *Feature) handleMonthly(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if opts := common.OptionMap(options); opts["month"] != nil {
		month = int(opts["month"].IntValue())
	}

	records, err := f.statsService.MonthlyLeaderboard(ctx, guildID, year, month)
	if err != nil {
		log.Errorf("Error getting monthly leaderboard for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to retrieve the monthly race. Please try again.")
		return
	}

	common.RespondWithEmbed(s, i, monthlyEmbed(s, i, year, month, records), false)
}
