package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"bookie/bot"
	"bookie/cache"
	"bookie/config"
	"bookie/database"
	"bookie/events"
	"bookie/repository"
	"bookie/service"
	"bookie/workers"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting bookie bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	// Initialize the Redis cache when configured
	var store *cache.Store
	if cfg.CacheURL != "" {
		store, err = cache.New(ctx, cfg.CacheURL)
		if err != nil {
			return fmt.Errorf("failed to connect to cache: %w", err)
		}
		log.Info("Cache connection established")
	} else {
		log.Info("No cache configured, running without one")
	}

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	userService := service.NewUserService(uowFactory, store)
	betService := service.NewBetService(uowFactory)
	gameService := service.NewGameService(uowFactory)
	statsService := service.NewStatsService(uowFactory)
	adminService := service.NewAdminService(uowFactory)
	log.Info("Services initialized")

	// Start the background scheduler
	scheduler, err := workers.NewScheduler(betService, statsService)
	if err != nil {
		return fmt.Errorf("failed to initialize scheduler: %w", err)
	}
	scheduler.Start()
	log.Info("Background scheduler started")

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:             cfg.DiscordToken,
		GuildID:           cfg.DiscordGuildID,
		AnnounceChannelID: cfg.AnnounceChannelID,
	}
	discordBot, err := bot.New(botConfig, userService, betService, gameService, statsService, adminService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	if err := scheduler.Stop(); err != nil {
		log.Errorf("Error stopping scheduler: %v", err)
	}

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	if store != nil {
		if err := store.Close(); err != nil {
			log.Errorf("Error closing cache connection: %v", err)
		}
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
