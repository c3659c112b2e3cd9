package betting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"bookie/bot/common"
	"bookie/models"
	"bookie/service"
)

var betTypes = map[string]models.BetType{
	"moneyline": models.BetTypeMoneyline,
	"spread":    models.BetTypeSpread,
	"total":     models.BetTypeTotal,
	"prop":      models.BetTypeProp,
}

func (f *Feature) handlePlace(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	guildID, userID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// The member row has to exist before units move
	guildName := ""
	if guild, err := s.Guild(i.GuildID); err == nil {
		guildName = guild.Name
	}
	if _, err := f.userService.EnsureMembership(ctx, guildID, guildName, userID, i.Member.User.Username); err != nil {
		log.Errorf("Error ensuring membership for %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	opts := common.OptionMap(options)

	betType, ok := betTypes[opts["type"].StringValue()]
	if !ok {
		common.RespondWithError(s, i, "Unknown bet type.")
		return
	}
	selection := opts["selection"].StringValue()

	units, err := decimal.NewFromString(opts["units"].StringValue())
	if err != nil {
		common.RespondWithError(s, i, "Units must be a number, like `2` or `0.5`.")
		return
	}
	odds, err := decimal.NewFromString(opts["odds"].StringValue())
	if err != nil {
		common.RespondWithError(s, i, "Odds must be an American price, like `-110` or `+150`.")
		return
	}

	var gameID *string
	if opt, ok := opts["game"]; ok {
		id := opt.StringValue()
		gameID = &id
	}

	bet, err := f.betService.PlaceBet(ctx, guildID, userID, gameID, betType, selection, units, odds)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientUnits):
			common.RespondWithError(s, i, "You don't have enough units for that stake.")
		case errors.Is(err, service.ErrNotFound):
			common.RespondWithError(s, i, "That game is not on the board.")
		default:
			log.Errorf("Error placing bet for %d: %v", userID, err)
			common.RespondWithError(s, i, fmt.Sprintf("Could not place bet: %v", err))
		}
		return
	}

	common.RespondWithEmbed(s, i, betPlacedEmbed(s, i, bet), false)
}

func (f *Feature) handleParlay(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
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
	if _, err := f.userService.EnsureMembership(ctx, guildID, guildName, userID, i.Member.User.Username); err != nil {
		log.Errorf("Error ensuring membership for %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	opts := common.OptionMap(options)

	units, err := decimal.NewFromString(opts["units"].StringValue())
	if err != nil {
		common.RespondWithError(s, i, "Units must be a number, like `2` or `0.5`.")
		return
	}

	legs, err := parseParlayLegs(opts["legs"].StringValue())
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}

	bet, err := f.betService.PlaceParlay(ctx, guildID, userID, legs, units)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientUnits) {
			common.RespondWithError(s, i, "You don't have enough units for that stake.")
			return
		}
		log.Errorf("Error placing parlay for %d: %v", userID, err)
		common.RespondWithError(s, i, fmt.Sprintf("Could not place parlay: %v", err))
		return
	}

	common.RespondWithEmbed(s, i, betPlacedEmbed(s, i, bet), false)
}

// parseParlayLegs reads legs written as `selection @ odds`, separated by
// semicolons. Example: `Chiefs ML @ -110; Lakers +3.5 @ -105`.
func parseParlayLegs(input string) ([]models.BetLeg, error) {
	var legs []models.BetLeg
	for _, part := range strings.Split(input, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		at := strings.LastIndex(part, "@")
		if at < 0 {
			return nil, fmt.Errorf("each leg needs `selection @ odds`, got `%s`", part)
		}
		odds, err := decimal.NewFromString(strings.TrimSpace(part[at+1:]))
		if err != nil {
			return nil, fmt.Errorf("leg `%s` has no readable odds", part)
		}
		legs = append(legs, models.BetLeg{
			Selection: strings.TrimSpace(part[:at]),
			Odds:      odds,
		})
	}
	return legs, nil
}

func (f *Feature) handlePending(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, userID, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	bets, err := f.betService.ListPending(ctx, guildID, userID)
	if err != nil {
		log.Errorf("Error listing pending bets for %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to fetch pending bets. Please try again.")
		return
	}

	common.RespondWithEmbed(s, i, pendingEmbed(s, i, bets), true)
}

func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	_, userID, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	opts := common.OptionMap(options)
	betID := opts["id"].IntValue()

	bet, err := f.betService.CancelBet(ctx, betID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			common.RespondWithError(s, i, fmt.Sprintf("No bet #%d.", betID))
		case errors.Is(err, service.ErrInvalidTransition):
			common.RespondWithError(s, i, fmt.Sprintf("Bet #%d is already settled.", betID))
		default:
			log.Errorf("Error cancelling bet %d: %v", betID, err)
			common.RespondWithError(s, i, fmt.Sprintf("Could not cancel bet: %v", err))
		}
		return
	}

	common.RespondWithContent(s, i,
		fmt.Sprintf("🚫 Bet #%d cancelled, **%s units** returned.", bet.ID, common.FormatUnits(bet.Units)),
		false)
}
