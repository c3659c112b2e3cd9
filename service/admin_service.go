package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"bookie/models"
)

// DefaultBannerColor is applied when a capper is added without one.
const DefaultBannerColor = "#0096FF"

var bannerColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// adminService implements the AdminService interface
type adminService struct {
	uowFactory UnitOfWorkFactory
}

// NewAdminService creates a new admin service
func NewAdminService(uowFactory UnitOfWorkFactory) AdminService {
	return &adminService{
		uowFactory: uowFactory,
	}
}

func (s *adminService) AddCapper(ctx context.Context, guildID, userID int64, displayName, bannerColor string) (*models.Capper, error) {
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}
	if bannerColor == "" {
		bannerColor = DefaultBannerColor
	}
	if !bannerColorPattern.MatchString(bannerColor) {
		return nil, fmt.Errorf("banner color must be a hex color like #0096FF")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	gu, err := uow.GuildUserRepository().Get(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if gu == nil {
		return nil, fmt.Errorf("user %d is not a member of guild %d: %w", userID, guildID, ErrNotFound)
	}

	capper := &models.Capper{
		GuildID:     guildID,
		UserID:      userID,
		DisplayName: displayName,
		BannerColor: bannerColor,
	}
	if err := uow.CapperRepository().Upsert(ctx, capper); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return capper, nil
}

func (s *adminService) RemoveCapper(ctx context.Context, guildID, userID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.CapperRepository().Delete(ctx, guildID, userID); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *adminService) ListCappers(ctx context.Context, guildID int64) ([]*models.Capper, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	cappers, err := uow.CapperRepository().ListByGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return cappers, nil
}

// RemoveGuildUser deletes a membership. The member's pending bets are voided
// without refund, their capper profile goes with them, and the settled bet
// and ledger history stays behind for the guild's books.
func (s *adminService) RemoveGuildUser(ctx context.Context, guildID, userID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	gu, err := uow.GuildUserRepository().Get(ctx, guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if gu == nil {
		return ErrNotFound
	}

	pending, err := uow.BetRepository().ListPendingByUser(ctx, guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to list pending bets: %w", err)
	}
	// Voided bets settle with a zero result, same as a member cancellation,
	// so result sums read uniformly. The stake is not returned.
	zero := decimal.Zero
	for _, bet := range pending {
		if err := uow.BetRepository().Transition(ctx, bet.ID, models.BetStatusCancelled, &zero); err != nil {
			return fmt.Errorf("failed to void bet %d: %w", bet.ID, err)
		}
	}

	if err := uow.CapperRepository().Delete(ctx, guildID, userID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := uow.GuildUserRepository().Remove(ctx, guildID, userID); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"guild_id":    guildID,
		"user_id":     userID,
		"voided_bets": len(pending),
	}).Info("removed guild member")

	return nil
}
