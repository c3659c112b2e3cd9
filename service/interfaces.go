package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"bookie/events"
	"bookie/models"
)

var (
	// ErrInsufficientUnits is returned when a debit would take a member's
	// unit balance below zero.
	ErrInsufficientUnits = errors.New("insufficient units")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a bet is moved out of a
	// terminal status, or resolved twice.
	ErrInvalidTransition = errors.New("invalid bet status transition")

	// ErrUnknownLeague is returned for league names outside the registry.
	ErrUnknownLeague = errors.New("unknown league")
)

// UserRepository manages global user records keyed by Discord ID.
type UserRepository interface {
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)
	Create(ctx context.Context, discordID int64, username string, startingBalance decimal.Decimal) (*models.User, error)
	UpdateUsername(ctx context.Context, discordID int64, username string) error
}

// GuildRepository manages guild records.
type GuildRepository interface {
	GetByGuildID(ctx context.Context, guildID int64) (*models.Guild, error)
	Upsert(ctx context.Context, guildID int64, name string) (*models.Guild, error)
	List(ctx context.Context) ([]*models.Guild, error)
}

// GuildUserRepository manages per-guild membership and the units economy.
type GuildUserRepository interface {
	Get(ctx context.Context, guildID, userID int64) (*models.GuildUser, error)
	Create(ctx context.Context, guildID, userID int64, startingUnits decimal.Decimal) (*models.GuildUser, error)
	// CreditUnits adds amount to the member's unit balance.
	CreditUnits(ctx context.Context, guildID, userID int64, amount decimal.Decimal) error
	// DebitUnits subtracts amount from the member's unit balance. It
	// returns ErrInsufficientUnits when the balance cannot cover the
	// amount, without modifying the row.
	DebitUnits(ctx context.Context, guildID, userID int64, amount decimal.Decimal) error
	// AddLifetimeUnits applies a signed delta to the member's lifetime
	// profit and loss tally.
	AddLifetimeUnits(ctx context.Context, guildID, userID int64, delta decimal.Decimal) error
	Remove(ctx context.Context, guildID, userID int64) error
	Leaderboard(ctx context.Context, guildID int64, limit int) ([]*models.LeaderboardEntry, error)
}

// GameRepository manages game records ingested from the sports data provider.
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id string) (*models.Game, error)
	ListUpcoming(ctx context.Context, league string, limit int) ([]*models.Game, error)
	SetScore(ctx context.Context, id string, status models.GameStatus, score *models.Score) error
}

// BetRepository manages bets and their status transitions.
type BetRepository interface {
	Create(ctx context.Context, bet *models.Bet) error
	GetByID(ctx context.Context, id int64) (*models.Bet, error)
	ListPendingByUser(ctx context.Context, guildID, userID int64) ([]*models.Bet, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Bet, error)
	// Transition moves a pending bet to the given status, recording the
	// signed unit result. It returns ErrInvalidTransition when the bet is
	// no longer pending.
	Transition(ctx context.Context, id int64, to models.BetStatus, result *decimal.Decimal) error
	GetRecord(ctx context.Context, guildID, userID int64) (*models.BetRecord, error)
}

// TransactionRepository appends to the immutable transaction ledger.
type TransactionRepository interface {
	Record(ctx context.Context, tx *models.Transaction) error
	ListByUser(ctx context.Context, guildID, userID int64, limit int) ([]*models.Transaction, error)
}

// UnitRecordRepository manages monthly unit aggregates.
type UnitRecordRepository interface {
	Create(ctx context.Context, record *models.UnitRecord) error
	// AddUnits applies a signed delta to the member's record for the
	// period, creating the row when absent.
	AddUnits(ctx context.Context, guildID, userID int64, year, month int, delta decimal.Decimal) error
	Get(ctx context.Context, guildID, userID int64, year, month int) (*models.UnitRecord, error)
	ListByPeriod(ctx context.Context, guildID int64, year, month int) ([]*models.UnitRecord, error)
}

// CapperRepository manages capper profiles and their running records.
type CapperRepository interface {
	Upsert(ctx context.Context, capper *models.Capper) error
	Get(ctx context.Context, guildID, userID int64) (*models.Capper, error)
	Delete(ctx context.Context, guildID, userID int64) error
	// IncrementResult bumps the capper's win, loss, or push counter for a
	// resolved bet. Statuses outside those three are ignored.
	IncrementResult(ctx context.Context, guildID, userID int64, status models.BetStatus) error
	ListByGuild(ctx context.Context, guildID int64) ([]*models.Capper, error)
}

// UnitOfWork bundles repositories sharing a single database transaction.
// Events published through EventBus are held until Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	GuildRepository() GuildRepository
	GuildUserRepository() GuildUserRepository
	GameRepository() GameRepository
	BetRepository() BetRepository
	TransactionRepository() TransactionRepository
	UnitRecordRepository() UnitRecordRepository
	CapperRepository() CapperRepository

	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(event events.Event)
}

// UserService manages users and their guild memberships.
type UserService interface {
	// GetOrCreateUser fetches the user, creating them with the starting
	// balance on first contact.
	GetOrCreateUser(ctx context.Context, discordID int64, username string) (*models.User, error)
	// EnsureMembership guarantees user, guild, and membership rows exist,
	// seeding new members with starting units and an initial ledger entry.
	EnsureMembership(ctx context.Context, guildID int64, guildName string, discordID int64, username string) (*models.GuildUser, error)
	// AdjustUnits applies a signed adjustment to a member's balance and
	// records it in the ledger.
	AdjustUnits(ctx context.Context, guildID, userID int64, amount decimal.Decimal, reason string) (*models.GuildUser, error)
	GetTransactionHistory(ctx context.Context, guildID, userID int64, limit int) ([]*models.Transaction, error)
}

// BetService manages the betting lifecycle.
type BetService interface {
	PlaceBet(ctx context.Context, guildID, userID int64, gameID *string, betType models.BetType, selection string, units, odds decimal.Decimal) (*models.Bet, error)
	// PlaceParlay stakes units on two or more legs as one bet at their
	// combined price.
	PlaceParlay(ctx context.Context, guildID, userID int64, legs []models.BetLeg, units decimal.Decimal) (*models.Bet, error)
	ResolveBet(ctx context.Context, betID int64, status models.BetStatus) (*models.Bet, error)
	CancelBet(ctx context.Context, betID, userID int64) (*models.Bet, error)
	ListPending(ctx context.Context, guildID, userID int64) ([]*models.Bet, error)
	// ExpirePendingBets refunds and expires pending bets older than the
	// configured expiry window, returning the count expired.
	ExpirePendingBets(ctx context.Context) (int, error)
}

// GameService manages game data and league lookups.
type GameService interface {
	UpsertGame(ctx context.Context, game *models.Game) error
	UpcomingGames(ctx context.Context, league string, limit int) ([]*models.Game, error)
	RecordScore(ctx context.Context, gameID string, status models.GameStatus, score *models.Score) error
}

// StatsService produces leaderboards and betting records.
type StatsService interface {
	Leaderboard(ctx context.Context, guildID int64, limit int) ([]*models.LeaderboardEntry, error)
	BetRecord(ctx context.Context, guildID, userID int64) (*models.BetRecord, error)
	MonthlyRecord(ctx context.Context, guildID, userID int64, year, month int) (*models.UnitRecord, error)
	MonthlyLeaderboard(ctx context.Context, guildID int64, year, month int) ([]*models.UnitRecord, error)
	// MonthlyWinners returns the best monthly record per guild for the
	// period. Guilds with no settled bets that month are absent.
	MonthlyWinners(ctx context.Context, year, month int) (map[int64]*models.UnitRecord, error)
}

// AdminService covers guild administration operations.
type AdminService interface {
	AddCapper(ctx context.Context, guildID, userID int64, displayName, bannerColor string) (*models.Capper, error)
	RemoveCapper(ctx context.Context, guildID, userID int64) error
	ListCappers(ctx context.Context, guildID int64) ([]*models.Capper, error)
	// RemoveGuildUser deletes the membership and voids the member's
	// pending bets without refund.
	RemoveGuildUser(ctx context.Context, guildID, userID int64) error
}
