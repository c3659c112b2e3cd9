package balance

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"bookie/bot/common"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, userID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	guildName := ""
	if guild, err := s.Guild(i.GuildID); err == nil {
		guildName = guild.Name
	}

	gu, err := f.userService.EnsureMembership(ctx, guildID, guildName, userID, i.Member.User.Username)
	if err != nil {
		log.Errorf("Error ensuring membership for %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	message := fmt.Sprintf("%s, you have **%s units** (lifetime %s)",
		displayName,
		common.FormatUnits(gu.UnitsBalance),
		common.FormatSignedUnits(gu.LifetimeUnits))

	common.RespondWithContent(s, i, message, false)
}
