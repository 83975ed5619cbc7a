package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/skarbek/treasury-server-go/internal/errors"
	"github.com/skarbek/treasury-server-go/internal/model"
	"github.com/skarbek/treasury-server-go/internal/repository"
)

// LedgerService is the sole writer of contribution records. Both operations
// are idempotent, so concurrent admins confirming the same roster row race
// safely without locking.
type LedgerService struct {
	contribRepo  repository.ContributionRepository
	campaignRepo repository.CampaignRepository
	parentRepo   repository.ParentRepository
}

func NewLedgerService(
	contribRepo repository.ContributionRepository,
	campaignRepo repository.CampaignRepository,
	parentRepo repository.ParentRepository,
) *LedgerService {
	return &LedgerService{
		contribRepo:  contribRepo,
		campaignRepo: campaignRepo,
		parentRepo:   parentRepo,
	}
}

// Ensure returns the (campaign, parent) record, creating a pending one when
// absent. An existing record is returned unchanged. When amountExpected is
// zero the campaign's target amount is used.
func (s *LedgerService) Ensure(ctx context.Context, campaignID, parentID string, amountExpected float64, note *string) (*model.Contribution, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if campaign == nil {
		return nil, apperrors.NotFound("Campaign")
	}
	if campaign.IsClosed {
		return nil, apperrors.CampaignClosed()
	}

	parent, err := s.parentRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if parent == nil {
		return nil, apperrors.NotFound("Parent")
	}

	if amountExpected == 0 {
		amountExpected = campaign.TargetAmount
	}

	contribution, err := s.contribRepo.Ensure(ctx, model.EnsureContributionParams{
		CampaignID:     campaignID,
		ParentID:       parentID,
		AmountExpected: amountExpected,
		Note:           note,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Debug().
		Str("campaignId", campaignID).
		Str("parentId", parentID).
		Str("status", string(contribution.Status)).
		Msg("contribution ensured")

	return contribution, nil
}

// MarkPaid flips an existing record to paid. It fails with not_found when no
// record exists for the pair and never creates one as a side effect; calling
// it on an already-paid record is a no-op.
func (s *LedgerService) MarkPaid(ctx context.Context, campaignID, parentID string, amount float64, note *string) (*model.Contribution, error) {
	contribution, err := s.contribRepo.MarkPaid(ctx, campaignID, parentID, amount, note)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if contribution == nil {
		return nil, apperrors.NotFound("Contribution")
	}

	log.Info().
		Str("campaignId", campaignID).
		Str("parentId", parentID).
		Float64("amount", contribution.AmountPaid).
		Msg("contribution marked paid")

	return contribution, nil
}

func (s *LedgerService) ListByCampaign(ctx context.Context, campaignID string) ([]model.Contribution, error) {
	contributions, err := s.contribRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return contributions, nil
}

func (s *LedgerService) ListByParent(ctx context.Context, parentID string) ([]model.Contribution, error) {
	contributions, err := s.contribRepo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return contributions, nil
}
