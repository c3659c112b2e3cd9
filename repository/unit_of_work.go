package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookie/database"
	"bookie/events"
	"bookie/service"
)

// UnitOfWorkFactory creates units of work bound to the connection pool and
// the process event bus.
type UnitOfWorkFactory struct {
	db  *database.DB
	bus *events.Bus
}

func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, bus: bus}
}

func (f *UnitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{db: f.db, bus: f.bus}
}

// unitOfWork runs all repository operations on one database transaction.
// Domain events are buffered and only reach subscribers after Commit.
type unitOfWork struct {
	db  *database.DB
	bus *events.Bus

	tx     pgx.Tx
	txBus  *events.TransactionalBus
	users  service.UserRepository
	guilds service.GuildRepository

	guildUsers   service.GuildUserRepository
	games        service.GameRepository
	bets         service.BetRepository
	transactions service.TransactionRepository
	unitRecords  service.UnitRecordRepository
	cappers      service.CapperRepository
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("unit of work already started")
	}

	tx, err := u.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.txBus = events.NewTransactionalBus(u.bus)
	u.users = newUserRepositoryWithTx(tx)
	u.guilds = newGuildRepositoryWithTx(tx)
	u.guildUsers = newGuildUserRepositoryWithTx(tx)
	u.games = newGameRepositoryWithTx(tx)
	u.bets = newBetRepositoryWithTx(tx)
	u.transactions = newTransactionRepositoryWithTx(tx)
	u.unitRecords = newUnitRecordRepositoryWithTx(tx)
	u.cappers = newCapperRepositoryWithTx(tx)
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("unit of work not started")
	}

	if err := u.tx.Commit(context.Background()); err != nil {
		u.txBus.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.txBus.Flush(context.Background())
	u.tx = nil
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	u.txBus.Discard()
	err := u.tx.Rollback(context.Background())
	u.tx = nil
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) UserRepository() service.UserRepository               { return u.users }
func (u *unitOfWork) GuildRepository() service.GuildRepository             { return u.guilds }
func (u *unitOfWork) GuildUserRepository() service.GuildUserRepository     { return u.guildUsers }
func (u *unitOfWork) GameRepository() service.GameRepository               { return u.games }
func (u *unitOfWork) BetRepository() service.BetRepository                 { return u.bets }
func (u *unitOfWork) TransactionRepository() service.TransactionRepository { return u.transactions }
func (u *unitOfWork) UnitRecordRepository() service.UnitRecordRepository   { return u.unitRecords }
func (u *unitOfWork) CapperRepository() service.CapperRepository           { return u.cappers }
func (u *unitOfWork) EventBus() service.EventPublisher                     { return u.txBus }
