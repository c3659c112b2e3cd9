package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"bookie/events"
	"bookie/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, discordID int64, username string, startingBalance decimal.Decimal) (*models.User, error) {
	args := m.Called(ctx, discordID, username, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUsername(ctx context.Context, discordID int64, username string) error {
	args := m.Called(ctx, discordID, username)
	return args.Error(0)
}

// MockGuildRepository is a mock implementation of GuildRepository
type MockGuildRepository struct {
	mock.Mock
}

func (m *MockGuildRepository) GetByGuildID(ctx context.Context, guildID int64) (*models.Guild, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockGuildRepository) List(ctx context.Context) ([]*models.Guild, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Guild), args.Error(1)
}

func (m *MockGuildRepository) Upsert(ctx context.Context, guildID int64, name string) (*models.Guild, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

// MockGuildUserRepository is a mock implementation of GuildUserRepository
type MockGuildUserRepository struct {
	mock.Mock
}

func (m *MockGuildUserRepository) Get(ctx context.Context, guildID, userID int64) (*models.GuildUser, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildUser), args.Error(1)
}

func (m *MockGuildUserRepository) Create(ctx context.Context, guildID, userID int64, startingUnits decimal.Decimal) (*models.GuildUser, error) {
	args := m.Called(ctx, guildID, userID, startingUnits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildUser), args.Error(1)
}

func (m *MockGuildUserRepository) CreditUnits(ctx context.Context, guildID, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, guildID, userID, amount)
	return args.Error(0)
}

func (m *MockGuildUserRepository) DebitUnits(ctx context.Context, guildID, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, guildID, userID, amount)
	return args.Error(0)
}

func (m *MockGuildUserRepository) AddLifetimeUnits(ctx context.Context, guildID, userID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, guildID, userID, delta)
	return args.Error(0)
}

func (m *MockGuildUserRepository) Remove(ctx context.Context, guildID, userID int64) error {
	args := m.Called(ctx, guildID, userID)
	return args.Error(0)
}

func (m *MockGuildUserRepository) Leaderboard(ctx context.Context, guildID int64, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) ListUpcoming(ctx context.Context, league string, limit int) ([]*models.Game, error) {
	args := m.Called(ctx, league, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

func (m *MockGameRepository) SetScore(ctx context.Context, id string, status models.GameStatus, score *models.Score) error {
	args := m.Called(ctx, id, status, score)
	return args.Error(0)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *models.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByID(ctx context.Context, id int64) (*models.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) ListPendingByUser(ctx context.Context, guildID, userID int64) ([]*models.Bet, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBetRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Bet, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBetRepository) Transition(ctx context.Context, id int64, to models.BetStatus, result *decimal.Decimal) error {
	args := m.Called(ctx, id, to, result)
	return args.Error(0)
}

func (m *MockBetRepository) GetRecord(ctx context.Context, guildID, userID int64) (*models.BetRecord, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetRecord), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Record(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, guildID, userID int64, limit int) ([]*models.Transaction, error) {
	args := m.Called(ctx, guildID, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

// MockUnitRecordRepository is a mock implementation of UnitRecordRepository
type MockUnitRecordRepository struct {
	mock.Mock
}

func (m *MockUnitRecordRepository) Create(ctx context.Context, record *models.UnitRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUnitRecordRepository) AddUnits(ctx context.Context, guildID, userID int64, year, month int, delta decimal.Decimal) error {
	args := m.Called(ctx, guildID, userID, year, month, delta)
	return args.Error(0)
}

func (m *MockUnitRecordRepository) Get(ctx context.Context, guildID, userID int64, year, month int) (*models.UnitRecord, error) {
	args := m.Called(ctx, guildID, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UnitRecord), args.Error(1)
}

func (m *MockUnitRecordRepository) ListByPeriod(ctx context.Context, guildID int64, year, month int) ([]*models.UnitRecord, error) {
	args := m.Called(ctx, guildID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UnitRecord), args.Error(1)
}

// MockCapperRepository is a mock implementation of CapperRepository
type MockCapperRepository struct {
	mock.Mock
}

func (m *MockCapperRepository) Upsert(ctx context.Context, capper *models.Capper) error {
	args := m.Called(ctx, capper)
	return args.Error(0)
}

func (m *MockCapperRepository) Get(ctx context.Context, guildID, userID int64) (*models.Capper, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Capper), args.Error(1)
}

func (m *MockCapperRepository) Delete(ctx context.Context, guildID, userID int64) error {
	args := m.Called(ctx, guildID, userID)
	return args.Error(0)
}

func (m *MockCapperRepository) IncrementResult(ctx context.Context, guildID, userID int64, status models.BetStatus) error {
	args := m.Called(ctx, guildID, userID, status)
	return args.Error(0)
}

func (m *MockCapperRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Capper, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Capper), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// RecordingEventPublisher collects published events without expectations
type RecordingEventPublisher struct {
	Events []events.Event
}

func (p *RecordingEventPublisher) Publish(event events.Event) {
	p.Events = append(p.Events, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// plain fields so tests wire in whichever mocks they need.
type MockUnitOfWork struct {
	mock.Mock

	users        UserRepository
	guilds       GuildRepository
	guildUsers   GuildUserRepository
	games        GameRepository
	bets         BetRepository
	transactions TransactionRepository
	unitRecords  UnitRecordRepository
	cappers      CapperRepository
	publisher    EventPublisher
}

// SetRepositories wires mock repositories into the unit of work. Nil is fine
// for repositories the test never touches.
func (m *MockUnitOfWork) SetRepositories(
	users UserRepository,
	guilds GuildRepository,
	guildUsers GuildUserRepository,
	games GameRepository,
	bets BetRepository,
	transactions TransactionRepository,
	unitRecords UnitRecordRepository,
	cappers CapperRepository,
) {
	m.users = users
	m.guilds = guilds
	m.guildUsers = guildUsers
	m.games = games
	m.bets = bets
	m.transactions = transactions
	m.unitRecords = unitRecords
	m.cappers = cappers
}

// SetEventPublisher wires the event publisher; a RecordingEventPublisher is
// installed by default.
func (m *MockUnitOfWork) SetEventPublisher(p EventPublisher) {
	m.publisher = p
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository               { return m.users }
func (m *MockUnitOfWork) GuildRepository() GuildRepository             { return m.guilds }
func (m *MockUnitOfWork) GuildUserRepository() GuildUserRepository     { return m.guildUsers }
func (m *MockUnitOfWork) GameRepository() GameRepository               { return m.games }
func (m *MockUnitOfWork) BetRepository() BetRepository                 { return m.bets }
func (m *MockUnitOfWork) TransactionRepository() TransactionRepository { return m.transactions }
func (m *MockUnitOfWork) UnitRecordRepository() UnitRecordRepository   { return m.unitRecords }
func (m *MockUnitOfWork) CapperRepository() CapperRepository           { return m.cappers }

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.publisher == nil {
		m.publisher = &RecordingEventPublisher{}
	}
	return m.publisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
