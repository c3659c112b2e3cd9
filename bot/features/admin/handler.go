package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"bookie/bot/common"
	"bookie/models"
	"bookie/service"
)

func (f *Feature) handleCapper(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	if len(sub.Options) == 0 {
		common.RespondWithError(s, i, "Unknown capper subcommand.")
		return
	}

	switch sub.Options[0].Name {
	case "add":
		f.handleCapperAdd(s, i, sub.Options[0])
	case "remove":
		f.handleCapperRemove(s, i, sub.Options[0])
	case "list":
		f.handleCapperList(s, i)
	default:
		common.RespondWithError(s, i, "Unknown capper subcommand.")
	}
}

func (f *Feature) handleCapperAdd(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "This command only works inside a server.")
		return
	}

	opts := common.OptionMap(sub.Options)
	target := opts["user"].UserValue(s)
	userID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, target.ID)
	if opt, ok := opts["name"]; ok {
		displayName = opt.StringValue()
	}
	color := ""
	if opt, ok := opts["color"]; ok {
		color = opt.StringValue()
	}

	capper, err := f.adminService.AddCapper(context.Background(), guildID, userID, displayName, color)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			common.RespondWithError(s, i, fmt.Sprintf("%s is not a member here yet. They need to place a bet or check their balance first.", target.Mention()))
			return
		}
		common.RespondWithError(s, i, err.Error())
		return
	}

	common.RespondWithContent(s, i,
		fmt.Sprintf("✅ %s is now tracked as capper **%s** (%s).", target.Mention(), capper.DisplayName, capper.BannerColor), false)
}

func (f *Feature) handleCapperRemove(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "This command only works inside a server.")
		return
	}

	opts := common.OptionMap(sub.Options)
	target := opts["user"].UserValue(s)
	userID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user.")
		return
	}

	if err := f.adminService.RemoveCapper(context.Background(), guildID, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			common.RespondWithError(s, i, fmt.Sprintf("%s is not a tracked capper.", target.Mention()))
			return
		}
		common.RespondWithError(s, i, err.Error())
		return
	}

	common.RespondWithContent(s, i, fmt.Sprintf("✅ %s is no longer a tracked capper.", target.Mention()), false)
}

func (f *Feature) handleCapperList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "This command only works inside a server.")
		return
	}

	cappers, err := f.adminService.ListCappers(context.Background(), guildID)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}

	if len(cappers) == 0 {
		common.RespondWithContent(s, i, "No tracked cappers in this server.", true)
		return
	}

	var body strings.Builder
	for _, capper := range cappers {
		body.WriteString(fmt.Sprintf("• **%s** <@%d> — %s\n", capper.DisplayName, capper.UserID, capper.Record()))
	}
	common.RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🎯 Tracked cappers",
		Description: body.String(),
		Color:       0x0096FF,
	}, false)
}

func (f *Feature) handleRemoveUser(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "This command only works inside a server.")
		return
	}

	opts := common.OptionMap(sub.Options)
	target := opts["user"].UserValue(s)
	userID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user.")
		return
	}

	if err := f.adminService.RemoveGuildUser(context.Background(), guildID, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			common.RespondWithError(s, i, fmt.Sprintf("%s is not a member here.", target.Mention()))
			return
		}
		common.RespondWithError(s, i, err.Error())
		return
	}

	common.RespondWithContent(s, i,
		fmt.Sprintf("✅ Removed %s from the book. Their pending bets were voided without refund.", target.Mention()), false)
}

func (f *Feature) handleAdjust(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "This command only works inside a server.")
		return
	}

	opts := common.OptionMap(sub.Options)
	target := opts["user"].UserValue(s)
	userID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user.")
		return
	}

	amount, err := decimal.NewFromString(opts["amount"].StringValue())
	if err != nil {
		common.RespondWithError(s, i, "Amount must be a number, for example `10` or `-2.5`.")
		return
	}

	reason := "manual adjustment"
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	member, err := f.userService.AdjustUnits(context.Background(), guildID, userID, amount, reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			common.RespondWithError(s, i, fmt.Sprintf("%s is not a member here yet.", target.Mention()))
		case errors.Is(err, service.ErrInsufficientUnits):
			common.RespondWithError(s, i, fmt.Sprintf("%s does not have enough units for that debit.", target.Mention()))
		default:
			common.RespondWithError(s, i, err.Error())
		}
		return
	}

	common.RespondWithContent(s, i,
		fmt.Sprintf("✅ Adjusted %s by %s units. New balance: **%s**.",
			target.Mention(), common.FormatSignedUnits(amount), common.FormatUnits(member.UnitsBalance)), false)
}

var resolveOutcomes = map[string]models.BetStatus{
	"won":  models.BetStatusWon,
	"lost": models.BetStatusLost,
	"push": models.BetStatusPush,
}

func (f *Feature) handleResolve(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := common.OptionMap(sub.Options)
	betID := opts["id"].IntValue()

	outcome, ok := resolveOutcomes[opts["outcome"].StringValue()]
	if !ok {
		common.RespondWithError(s, i, "Outcome must be won, lost or push.")
		return
	}

	bet, err := f.betService.ResolveBet(context.Background(), betID, outcome)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			common.RespondWithError(s, i, fmt.Sprintf("No bet #%d.", betID))
		case errors.Is(err, service.ErrInvalidTransition):
			common.RespondWithError(s, i, fmt.Sprintf("Bet #%d is already settled.", betID))
		default:
			common.RespondWithError(s, i, err.Error())
		}
		return
	}

	result := "0"
	if bet.Result != nil {
		result = common.FormatSignedUnits(*bet.Result)
	}
	common.RespondWithContent(s, i,
		fmt.Sprintf("✅ Bet #%d settled as **%s** (%s units).", bet.ID, bet.Status, result), false)
}
