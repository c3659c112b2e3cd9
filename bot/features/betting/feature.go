package betting

import (
	"github.com/bwmarrin/discordgo"

	"bookie/bot/common"
	"bookie/service"
)

type Feature struct {
	betService  service.BetService
	userService service.UserService
}

func New(betService service.BetService, userService service.UserService) *Feature {
	return &Feature{
		betService:  betService,
		userService: userService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: place, parlay, pending or cancel")
		return
	}

	switch options[0].Name {
	case "place":
		f.handlePlace(s, i, options[0].Options)
	case "parlay":
		f.handleParlay(s, i, options[0].Options)
	case "pending":
		f.handlePending(s, i)
	case "cancel":
		f.handleCancel(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}
