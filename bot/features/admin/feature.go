package admin

import (
	"github.com/bwmarrin/discordgo"

	"bookie/bot/common"
	"bookie/service"
)

// Feature handles the /admin command group. Every subcommand requires
// the caller to hold the Administrator permission in the guild.
type Feature struct {
	adminService service.AdminService
	userService  service.UserService
	betService   service.BetService
}

func New(adminService service.AdminService, userService service.UserService, betService service.BetService) *Feature {
	return &Feature{
		adminService: adminService,
		userService:  userService,
		betService:   betService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		common.RespondWithError(s, i, "You need the Administrator permission to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Unknown admin subcommand.")
		return
	}

	switch options[0].Name {
	case "capper":
		f.handleCapper(s, i, options[0])
	case "removeuser":
		f.handleRemoveUser(s, i, options[0])
	case "adjust":
		f.handleAdjust(s, i, options[0])
	case "resolve":
		f.handleResolve(s, i, options[0])
	default:
		common.RespondWithError(s, i, "Unknown admin subcommand.")
	}
}
