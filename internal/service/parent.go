package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/skarbek/treasury-server-go/internal/config"
	apperrors "github.com/skarbek/treasury-server-go/internal/errors"
	"github.com/skarbek/treasury-server-go/internal/model"
	"github.com/skarbek/treasury-server-go/internal/repository"
	"github.com/skarbek/treasury-server-go/internal/util"
)

// ParentService backs the parent self-service surface: password rotation,
// the dashboard, and single-shot contribution submission.
type ParentService struct {
	parentRepo        repository.ParentRepository
	campaignRepo      repository.CampaignRepository
	parentSessionRepo repository.ParentSessionRepository
	ledger            *LedgerService
	auth              *AuthService
}

func NewParentService(
	parentRepo repository.ParentRepository,
	campaignRepo repository.CampaignRepository,
	parentSessionRepo repository.ParentSessionRepository,
	ledger *LedgerService,
	auth *AuthService,
) *ParentService {
	return &ParentService{
		parentRepo:        parentRepo,
		campaignRepo:      campaignRepo,
		parentSessionRepo: parentSessionRepo,
		ledger:            ledger,
		auth:              auth,
	}
}

// RotatePassword replaces the parent's credential and clears the
// must_change_password flag. Checks run in a fixed order so the caller always
// sees the first failing one: old password, minimum length, then sameness.
// On success every existing session for the parent is dropped and a fresh
// token with the cleared snapshot is returned.
func (s *ParentService) RotatePassword(ctx context.Context, parentID, oldPassword, newPassword string) (string, error) {
	parent, err := s.parentRepo.FindByID(ctx, parentID)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if parent == nil {
		return "", apperrors.NotFound("Parent")
	}

	if !util.CheckPasswordHash(oldPassword, parent.PasswordHash) {
		return "", apperrors.InvalidOldPassword()
	}
	if len(newPassword) < config.MinPasswordLength {
		return "", apperrors.PasswordTooShort(config.MinPasswordLength)
	}
	if newPassword == oldPassword {
		return "", apperrors.PasswordUnchanged()
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return "", apperrors.Internal("Failed to hash password").WithCause(err)
	}

	if err := s.parentRepo.SetCredential(ctx, parentID, hash, false); err != nil {
		return "", apperrors.Database(err)
	}

	// Pre-rotation tokens must stop working even though the live-flag check
	// would already block them.
	if err := s.parentSessionRepo.DeleteByParentID(ctx, parentID); err != nil {
		return "", apperrors.Database(err)
	}

	rotated, err := s.parentRepo.FindByID(ctx, parentID)
	if err != nil {
		return "", apperrors.Database(err)
	}
	token, err := s.auth.issueParentToken(ctx, rotated)
	if err != nil {
		return "", err
	}

	log.Info().Str("parentId", parentID).Msg("parent password rotated")
	return token, nil
}

// Dashboard joins the parent's own contributions against all open campaigns.
func (s *ParentService) Dashboard(ctx context.Context, parentID string) ([]DashboardEntry, error) {
	campaigns, err := s.campaignRepo.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	contributions, err := s.ledger.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(campaigns, contributions), nil
}

// SubmitContribution records the parent's pledge for a campaign. A declared
// amount is stored as the expected amount; zero falls back to the campaign
// target. Submission is single-shot: the ledger's Ensure semantics return the
// existing record unchanged on a repeat call, so resubmission can never
// duplicate or reset a record.
func (s *ParentService) SubmitContribution(ctx context.Context, parentID, campaignID string, amount float64, note *string) (*model.Contribution, error) {
	return s.ledger.Ensure(ctx, campaignID, parentID, amount, note)
}

func (s *ParentService) Contributions(ctx context.Context, parentID string) ([]model.Contribution, error) {
	return s.ledger.ListByParent(ctx, parentID)
}

func (s *ParentService) Get(ctx context.Context, parentID string) (*model.Parent, error) {
	parent, err := s.parentRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if parent == nil {
		return nil, apperrors.NotFound("Parent")
	}
	return parent, nil
}
