package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"bookie/bot/features/admin"
	"bookie/bot/features/balance"
	"bookie/bot/features/betting"
	"bookie/bot/features/games"
	"bookie/bot/features/stats"
	"bookie/events"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token string
	// GuildID scopes command registration to one guild when set.
	// Empty registers the commands globally.
	GuildID string
	// AnnounceChannelID receives settlement notices when set
	AnnounceChannelID string
}

type Bot struct {
	config  Config
	session *discordgo.Session

	balanceFeature *balance.Feature
	bettingFeature *betting.Feature
	gamesFeature   *games.Feature
	statsFeature   *stats.Feature
	adminFeature   *admin.Feature

	eventBus *events.Bus
}

func New(config Config, userService service.UserService, betService service.BetService, gameService service.GameService, statsService service.StatsService, adminService service.AdminService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:         config,
		session:        dg,
		balanceFeature: balance.New(userService),
		bettingFeature: betting.New(betService, userService),
		gamesFeature:   games.New(gameService),
		statsFeature:   stats.New(statsService),
		adminFeature:   admin.New(adminService, userService, betService),
		eventBus:       eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	if bot.config.AnnounceChannelID != "" {
		eventBus.Subscribe(events.EventTypeBetResolved, func(ctx context.Context, event events.Event) {
			resolved, ok := event.(events.BetResolvedEvent)
			if !ok {
				return
			}
			bot.announceSettlement(resolved)
		})
		log.Info("Settlement announcements enabled")
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// announceSettlement posts a short notice to the configured channel when
// a bet reaches a terminal status.
func (b *Bot) announceSettlement(event events.BetResolvedEvent) {
	var content string
	switch {
	case event.Result.IsPositive():
		content = fmt.Sprintf("💰 <@%d> won **+%s units** on bet #%d!", event.UserID, event.Result.StringFixed(2), event.BetID)
	case event.Result.IsNegative():
		content = fmt.Sprintf("📉 <@%d> dropped **%s units** on bet #%d.", event.UserID, event.Result.StringFixed(2), event.BetID)
	default:
		content = fmt.Sprintf("↔️ Bet #%d by <@%d> settled as a %s.", event.BetID, event.UserID, event.Status)
	}

	if _, err := b.session.ChannelMessageSend(b.config.AnnounceChannelID, content); err != nil {
		log.Errorf("Failed to announce bet %d settlement: %v", event.BetID, err)
	}
}
