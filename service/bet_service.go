package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"bookie/config"
	"bookie/events"
	"bookie/models"
)

// betService implements the BetService interface
type betService struct {
	uowFactory UnitOfWorkFactory
}

// NewBetService creates a new bet service
func NewBetService(uowFactory UnitOfWorkFactory) BetService {
	return &betService{
		uowFactory: uowFactory,
	}
}

// PlaceBet stakes units on a selection. The debit, the bet row, and the
// ledger entry land in one transaction, so a failure anywhere leaves the
// balance untouched.
func (s *betService) PlaceBet(ctx context.Context, guildID, userID int64, gameID *string, betType models.BetType, selection string, units, odds decimal.Decimal) (*models.Bet, error) {
	cfg := config.Get()
	if units.LessThan(cfg.MinUnits) || units.GreaterThan(cfg.MaxUnits) {
		return nil, fmt.Errorf("stake must be between %s and %s units", cfg.MinUnits, cfg.MaxUnits)
	}
	if selection == "" {
		return nil, fmt.Errorf("selection is required")
	}
	if err := validateAmericanOdds(odds); err != nil {
		return nil, err
	}
	if betType != models.BetTypeProp && gameID == nil {
		return nil, fmt.Errorf("%s bets require a game", betType)
	}

	return s.stake(ctx, &models.Bet{
		GuildID:   guildID,
		UserID:    userID,
		GameID:    gameID,
		BetType:   betType,
		Selection: selection,
		Units:     units,
		Odds:      odds,
	})
}

// PlaceParlay stakes units on two or more selections as a single bet. The
// stored bet carries the combined price; the legs keep their own.
func (s *betService) PlaceParlay(ctx context.Context, guildID, userID int64, legs []models.BetLeg, units decimal.Decimal) (*models.Bet, error) {
	cfg := config.Get()
	if units.LessThan(cfg.MinUnits) || units.GreaterThan(cfg.MaxUnits) {
		return nil, fmt.Errorf("stake must be between %s and %s units", cfg.MinUnits, cfg.MaxUnits)
	}
	if len(legs) < 2 {
		return nil, fmt.Errorf("a parlay needs at least two legs")
	}
	if len(legs) > maxParlayLegs {
		return nil, fmt.Errorf("a parlay can carry at most %d legs", maxParlayLegs)
	}

	selections := make([]string, len(legs))
	for n, leg := range legs {
		if leg.Selection == "" {
			return nil, fmt.Errorf("leg %d has no selection", n+1)
		}
		if err := validateAmericanOdds(leg.Odds); err != nil {
			return nil, fmt.Errorf("leg %d: %w", n+1, err)
		}
		selections[n] = leg.Selection
	}

	return s.stake(ctx, &models.Bet{
		GuildID:   guildID,
		UserID:    userID,
		BetType:   models.BetTypeParlay,
		Selection: strings.Join(selections, " / "),
		Units:     units,
		Odds:      parlayPrice(legs),
		Legs:      legs,
	})
}

// stake runs the placement transaction shared by straight bets and parlays:
// the game gate, the guarded debit, the bet row, and the ledger entry.
func (s *betService) stake(ctx context.Context, bet *models.Bet) (*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if bet.GameID != nil {
		game, err := uow.GameRepository().GetByID(ctx, *bet.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}
		if game == nil {
			return nil, fmt.Errorf("game %s: %w", *bet.GameID, ErrNotFound)
		}
		if game.Status != models.GameStatusScheduled {
			return nil, fmt.Errorf("game %s is no longer open for bets", *bet.GameID)
		}
		if !game.StartTime.After(time.Now()) {
			return nil, fmt.Errorf("game %s has already started", *bet.GameID)
		}
	}

	if err := uow.GuildUserRepository().DebitUnits(ctx, bet.GuildID, bet.UserID, bet.Units); err != nil {
		return nil, err
	}

	if err := uow.BetRepository().Create(ctx, bet); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("bet #%d: %s %s", bet.ID, bet.BetType, bet.Selection)
	if bet.BetType == models.BetTypeParlay {
		description = fmt.Sprintf("bet #%d: %d-leg parlay", bet.ID, len(bet.Legs))
	}
	tx := &models.Transaction{
		GuildID:     bet.GuildID,
		UserID:      bet.UserID,
		Amount:      bet.Units.Neg(),
		Type:        models.TransactionTypeBetPlaced,
		Description: description,
	}
	if err := uow.TransactionRepository().Record(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record stake: %w", err)
	}

	gameRef := ""
	if bet.GameID != nil {
		gameRef = *bet.GameID
	}
	uow.EventBus().Publish(events.BetPlacedEvent{
		BetID:   bet.ID,
		GuildID: bet.GuildID,
		UserID:  bet.UserID,
		GameID:  gameRef,
		Units:   bet.Units,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}

// ResolveBet settles a pending bet. Won bets return the stake plus winnings,
// pushes and voided bets return the stake, lost bets return nothing. The
// signed net result feeds lifetime units and the monthly record.
func (s *betService) ResolveBet(ctx context.Context, betID int64, status models.BetStatus) (*models.Bet, error) {
	if !models.BetStatusPending.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := s.settle(ctx, uow, betID, status)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bet, nil
}

// CancelBet lets a member void their own pending bet before the game starts.
func (s *betService) CancelBet(ctx context.Context, betID, userID int64) (*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, ErrNotFound
	}
	if bet.UserID != userID {
		return nil, fmt.Errorf("bet #%d belongs to another member", betID)
	}
	if bet.GameID != nil {
		game, err := uow.GameRepository().GetByID(ctx, *bet.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}
		if game != nil && !game.StartTime.After(time.Now()) {
			return nil, fmt.Errorf("game has started, bet #%d is locked", betID)
		}
	}

	bet, err = s.settle(ctx, uow, betID, models.BetStatusCancelled)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bet, nil
}

func (s *betService) ListPending(ctx context.Context, guildID, userID int64) ([]*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().ListPendingByUser(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bets, nil
}

// ExpirePendingBets refunds and expires bets that have sat pending past the
// configured window. Each bet settles in its own transaction so one bad row
// cannot wedge the sweep.
func (s *betService) ExpirePendingBets(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-time.Duration(config.Get().BetExpiryHours) * time.Hour)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	stale, err := uow.BetRepository().ListPendingOlderThan(ctx, cutoff)
	if rbErr := uow.Rollback(); rbErr != nil {
		log.WithError(rbErr).Warn("failed to rollback expiry scan")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list stale bets: %w", err)
	}

	expired := 0
	for _, bet := range stale {
		if _, err := s.ResolveBet(ctx, bet.ID, models.BetStatusExpired); err != nil {
			log.WithError(err).WithField("bet_id", bet.ID).Warn("failed to expire bet")
			continue
		}
		expired++
	}

	return expired, nil
}

// settle performs the bookkeeping shared by every terminal status: the bet
// transition, the payout, the ledger entry, lifetime units, the monthly
// record, and the capper tally.
func (s *betService) settle(ctx context.Context, uow UnitOfWork, betID int64, status models.BetStatus) (*models.Bet, error) {
	bet, err := uow.BetRepository().GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, ErrNotFound
	}
	if bet.Status != models.BetStatusPending {
		return nil, ErrInvalidTransition
	}

	var payout, result decimal.Decimal
	var txType models.TransactionType

	switch status {
	case models.BetStatusWon:
		profit := winProfit(bet.Units, bet.Odds)
		payout = bet.Units.Add(profit)
		result = profit
		txType = models.TransactionTypeBetWon
	case models.BetStatusLost:
		result = bet.Units.Neg()
	case models.BetStatusPush:
		payout = bet.Units
		txType = models.TransactionTypeBetPush
	case models.BetStatusCancelled, models.BetStatusExpired:
		payout = bet.Units
		txType = models.TransactionTypeBetRefund
	default:
		return nil, ErrInvalidTransition
	}

	if err := uow.BetRepository().Transition(ctx, betID, status, &result); err != nil {
		return nil, err
	}

	if payout.IsPositive() {
		if err := uow.GuildUserRepository().CreditUnits(ctx, bet.GuildID, bet.UserID, payout); err != nil {
			return nil, err
		}
		tx := &models.Transaction{
			GuildID:     bet.GuildID,
			UserID:      bet.UserID,
			Amount:      payout,
			Type:        txType,
			Description: fmt.Sprintf("bet #%d %s", betID, status),
		}
		if err := uow.TransactionRepository().Record(ctx, tx); err != nil {
			return nil, fmt.Errorf("failed to record payout: %w", err)
		}
	}

	// Cancellations and expiries are voids, not outcomes. They stay out of
	// lifetime units, the monthly record, and the capper tally.
	if status == models.BetStatusWon || status == models.BetStatusLost || status == models.BetStatusPush {
		if err := uow.GuildUserRepository().AddLifetimeUnits(ctx, bet.GuildID, bet.UserID, result); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		if err := uow.UnitRecordRepository().AddUnits(ctx, bet.GuildID, bet.UserID, now.Year(), int(now.Month()), result); err != nil {
			return nil, err
		}

		if err := uow.CapperRepository().IncrementResult(ctx, bet.GuildID, bet.UserID, status); err != nil {
			return nil, err
		}
	}

	bet.Status = status
	bet.Result = &result

	uow.EventBus().Publish(events.BetResolvedEvent{
		BetID:   betID,
		GuildID: bet.GuildID,
		UserID:  bet.UserID,
		Status:  status,
		Result:  result,
	})

	return bet, nil
}

// maxParlayLegs caps how many selections a single parlay may combine
const maxParlayLegs = 10

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// parlayPrice combines leg prices into one American price: each leg's
// decimal payout multiplier is multiplied out, and the resulting profit
// converts back. Two -110 legs come out near +264.
func parlayPrice(legs []models.BetLeg) decimal.Decimal {
	product := one
	for _, leg := range legs {
		if leg.Odds.IsPositive() {
			product = product.Mul(one.Add(leg.Odds.Div(hundred)))
		} else {
			product = product.Mul(one.Add(hundred.Div(leg.Odds.Abs())))
		}
	}

	profit := product.Sub(one)
	if profit.GreaterThanOrEqual(one) {
		return profit.Mul(hundred).Round(0)
	}
	return hundred.Div(profit).Neg().Round(0)
}

// validateAmericanOdds rejects prices outside the American convention.
// Every legal price is at least +100 or at most -100; in particular zero
// would divide the stake by zero at settlement.
func validateAmericanOdds(odds decimal.Decimal) error {
	if odds.Abs().LessThan(hundred) {
		return fmt.Errorf("odds must be an American price of +100 or longer, or -100 or shorter")
	}
	return nil
}

// winProfit converts an American price to the net profit on a winning stake,
// rounded to two places. +150 pays 1.5x the stake, -110 pays 100/110 of it.
func winProfit(units, odds decimal.Decimal) decimal.Decimal {
	if odds.IsPositive() {
		return units.Mul(odds).Div(hundred).Round(2)
	}
	return units.Mul(hundred).Div(odds.Abs()).Round(2)
}
