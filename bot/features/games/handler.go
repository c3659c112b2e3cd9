package games

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"bookie/bot/common"
	"bookie/leagues"
	"bookie/service"
)

const upcomingLimit = 10

func (f *Feature) handleGames(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	opts := common.OptionMap(i.ApplicationCommandData().Options)
	leagueOpt, ok := opts["league"]
	if !ok {
		common.RespondWithError(s, i, "Please pick a league.")
		return
	}
	league := leagueOpt.StringValue()

	lg, known := leagues.Lookup(league)
	if !known {
		common.RespondWithError(s, i, fmt.Sprintf("Unknown league **%s**. Try one of: %s",
			league, strings.Join(leagues.Names(), ", ")))
		return
	}

	// Leagues without provider coverage have a fixed roster instead of a
	// schedule feed
	if !lg.Supported() {
		common.RespondWithEmbed(s, i, rosterEmbed(league, lg), false)
		return
	}

	upcoming, err := f.gameService.UpcomingGames(ctx, league, upcomingLimit)
	if err != nil {
		if errors.Is(err, service.ErrUnknownLeague) {
			common.RespondWithError(s, i, fmt.Sprintf("Unknown league **%s**.", league))
			return
		}
		log.Errorf("Error listing upcoming games for %s: %v", league, err)
		common.RespondWithError(s, i, "Unable to fetch games. Please try again.")
		return
	}

	common.RespondWithEmbed(s, i, upcomingEmbed(league, lg, upcoming), false)
}
