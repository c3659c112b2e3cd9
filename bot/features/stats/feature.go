package stats

import (
	"github.com/bwmarrin/discordgo"

	"bookie/bot/common"
	"bookie/service"
)

type Feature struct {
	statsService service.StatsService
}

func New(statsService service.StatsService) *Feature {
	return &Feature{
		statsService: statsService,
	}
}

// HandleLeaderboard serves the standalone /leaderboard command
func (f *Feature) HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLeaderboard(s, i)
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: record or monthly")
		return
	}

	switch options[0].Name {
	case "record":
		f.handleRecord(s, i, options[0].Options)
	case "monthly":
		f.handleMonthly(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}
