package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	// DiscordGuildID scopes slash commands to one guild when set
	DiscordGuildID string
	// AnnounceChannelID receives settlement notices when set
	AnnounceChannelID string

	// Database configuration
	DatabaseURL string

	// Cache configuration (optional; empty disables the Redis cache)
	CacheURL string

	// License key for the sports-data provider
	LicenseKey string

	// Economy settings
	StartingBalance decimal.Decimal // global balance for new users
	StartingUnits   decimal.Decimal // per-guild units for new memberships
	MinUnits        decimal.Decimal
	MaxUnits        decimal.Decimal

	// BetExpiryHours is how long a pending bet may sit before the
	// expiry sweep refunds it
	BetExpiryHours int

	// Environment is "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from a .env file (if present) and the environment
func load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	config := &Config{
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID:    os.Getenv("DISCORD_GUILD_ID"),
		AnnounceChannelID: os.Getenv("ANNOUNCE_CHANNEL_ID"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		CacheURL:          os.Getenv("CACHE_URL"),
		LicenseKey:        os.Getenv("LICENSE_KEY"),

		StartingBalance: decimal.NewFromInt(1000),
		StartingUnits:   decimal.NewFromInt(100),
		MinUnits:        decimal.RequireFromString("0.1"),
		MaxUnits:        decimal.NewFromInt(10),

		BetExpiryHours: 72,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if v := os.Getenv("STARTING_BALANCE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			config.StartingBalance = d
		}
	}
	if v := os.Getenv("STARTING_UNITS"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			config.StartingUnits = d
		}
	}
	if v := os.Getenv("MIN_UNITS"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			config.MinUnits = d
		}
	}
	if v := os.Getenv("MAX_UNITS"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			config.MaxUnits = d
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
