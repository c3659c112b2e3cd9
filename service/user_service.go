package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bookie/cache"
	"bookie/config"
	"bookie/events"
	"bookie/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
	cache      *cache.Store
}

// NewUserService creates a new user service. The cache store may be nil when
// caching is disabled.
func NewUserService(uowFactory UnitOfWorkFactory, store *cache.Store) UserService {
	return &userService{
		uowFactory: uowFactory,
		cache:      store,
	}
}

// GetOrCreateUser retrieves an existing user or creates one with the
// configured starting balance.
func (s *userService) GetOrCreateUser(ctx context.Context, discordID int64, username string) (*models.User, error) {
	if s.cache != nil {
		var cached models.User
		if hit, err := s.cache.GetJSON(ctx, cache.UserKey(discordID), &cached); err == nil && hit {
			// A Discord rename makes the entry stale; fall through to the
			// database path, which updates the row and rewrites the key
			if cached.Username == username {
				return &cached, nil
			}
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if user != nil {
		// Keep the stored username current with Discord
		if user.Username != username {
			if err := uow.UserRepository().UpdateUsername(ctx, discordID, username); err != nil {
				return nil, err
			}
			user.Username = username
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		s.cacheUser(ctx, user)
		return user, nil
	}

	user, err = uow.UserRepository().Create(ctx, discordID, username, config.Get().StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:   discordID,
		Username: username,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cacheUser(ctx, user)
	return user, nil
}

// EnsureMembership guarantees the user, guild, and membership rows exist.
// New members are seeded with the configured starting units and an initial
// ledger entry.
func (s *userService) EnsureMembership(ctx context.Context, guildID int64, guildName string, discordID int64, username string) (*models.GuildUser, error) {
	if _, err := s.GetOrCreateUser(ctx, discordID, username); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := uow.GuildRepository().Upsert(ctx, guildID, guildName); err != nil {
		return nil, err
	}

	gu, err := uow.GuildUserRepository().Get(ctx, guildID, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if gu == nil {
		startingUnits := config.Get().StartingUnits
		gu, err = uow.GuildUserRepository().Create(ctx, guildID, discordID, startingUnits)
		if err != nil {
			return nil, fmt.Errorf("failed to create membership: %w", err)
		}

		tx := &models.Transaction{
			GuildID:     guildID,
			UserID:      discordID,
			Amount:      startingUnits,
			Type:        models.TransactionTypeInitial,
			Description: "starting units",
		}
		if err := uow.TransactionRepository().Record(ctx, tx); err != nil {
			return nil, fmt.Errorf("failed to record initial units: %w", err)
		}

		uow.EventBus().Publish(events.UnitsChangedEvent{
			GuildID:    guildID,
			UserID:     discordID,
			OldBalance: decimal.Zero,
			NewBalance: startingUnits,
			TxType:     models.TransactionTypeInitial,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return gu, nil
}

// AdjustUnits applies a signed adjustment to a member's unit balance and
// records it in the ledger.
func (s *userService) AdjustUnits(ctx context.Context, guildID, userID int64, amount decimal.Decimal, reason string) (*models.GuildUser, error) {
	if amount.IsZero() {
		return nil, fmt.Errorf("adjustment amount must be non-zero")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	before, err := uow.GuildUserRepository().Get(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if before == nil {
		return nil, ErrNotFound
	}

	if amount.IsNegative() {
		err = uow.GuildUserRepository().DebitUnits(ctx, guildID, userID, amount.Neg())
	} else {
		err = uow.GuildUserRepository().CreditUnits(ctx, guildID, userID, amount)
	}
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		GuildID:     guildID,
		UserID:      userID,
		Amount:      amount,
		Type:        models.TransactionTypeAdjust,
		Description: reason,
	}
	if err := uow.TransactionRepository().Record(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record adjustment: %w", err)
	}

	gu, err := uow.GuildUserRepository().Get(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload membership: %w", err)
	}

	uow.EventBus().Publish(events.UnitsChangedEvent{
		GuildID:    guildID,
		UserID:     userID,
		OldBalance: before.UnitsBalance,
		NewBalance: gu.UnitsBalance,
		TxType:     models.TransactionTypeAdjust,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return gu, nil
}

func (s *userService) GetTransactionHistory(ctx context.Context, guildID, userID int64, limit int) ([]*models.Transaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	txs, err := uow.TransactionRepository().ListByUser(ctx, guildID, userID, limit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return txs, nil
}

func (s *userService) cacheUser(ctx context.Context, user *models.User) {
	if s.cache == nil {
		return
	}
	s.cache.SetJSON(ctx, cache.UserKey(user.DiscordID), user, cache.UserTTL)
}
