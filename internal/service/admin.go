package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/skarbek/treasury-server-go/internal/errors"
	"github.com/skarbek/treasury-server-go/internal/mail"
	"github.com/skarbek/treasury-server-go/internal/model"
	"github.com/skarbek/treasury-server-go/internal/repository"
	"github.com/skarbek/treasury-server-go/internal/util"
)

// CampaignOverview is one campaign on the admin list: its contributions plus
// the derived unpaid badge and settled flag.
type CampaignOverview struct {
	Campaign      model.Campaign       `json:"campaign"`
	Contributions []model.Contribution `json:"contributions"`
	UnpaidCount   int                  `json:"unpaidCount"`
	Settled       bool                 `json:"settled"`
}

// Roster is the per-campaign parent list joined against contribution records.
type Roster struct {
	Campaign model.Campaign `json:"campaign"`
	Rows     []RosterRow    `json:"rows"`
}

// AdminService backs the treasurer surface: parent directory management,
// campaign lifecycle, and the reconciliation views.
type AdminService struct {
	parentRepo        repository.ParentRepository
	campaignRepo      repository.CampaignRepository
	parentSessionRepo repository.ParentSessionRepository
	ledger            *LedgerService
	mailer            mail.Mailer
}

func NewAdminService(
	parentRepo repository.ParentRepository,
	campaignRepo repository.CampaignRepository,
	parentSessionRepo repository.ParentSessionRepository,
	ledger *LedgerService,
	mailer mail.Mailer,
) *AdminService {
	return &AdminService{
		parentRepo:        parentRepo,
		campaignRepo:      campaignRepo,
		parentSessionRepo: parentSessionRepo,
		ledger:            ledger,
		mailer:            mailer,
	}
}

// Parents

// CreateParent registers a parent with a temporary password and arms the
// rotation gate. When tempPassword is empty a readable one is generated. The
// temporary password is emailed; delivery failure is logged, not fatal, so
// the treasurer can still hand the password over in person.
func (s *AdminService) CreateParent(ctx context.Context, name, email, tempPassword string) (*model.Parent, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, "", apperrors.MissingRequired("email")
	}

	existing, err := s.parentRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.Database(err)
	}
	if existing != nil {
		return nil, "", apperrors.AlreadyExists("Parent")
	}

	if tempPassword == "" {
		tempPassword, err = util.GenerateTempPassword(util.TempPasswordLength)
		if err != nil {
			return nil, "", apperrors.Internal("Failed to generate temporary password").WithCause(err)
		}
	}

	hash, err := util.HashPassword(tempPassword)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to hash password").WithCause(err)
	}

	parent, err := s.parentRepo.Create(ctx, model.CreateParentParams{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", apperrors.Database(err)
	}

	if err := s.mailer.SendTemporaryPassword(ctx, parent.Email, parent.Name, tempPassword); err != nil {
		log.Error().Err(err).Str("parentId", parent.ID).Msg("failed to send temporary password email")
	}

	log.Info().Str("parentId", parent.ID).Str("email", parent.Email).Msg("parent created")
	return parent, tempPassword, nil
}

func (s *AdminService) ListParents(ctx context.Context, includeHidden bool) ([]model.Parent, error) {
	parents, err := s.parentRepo.List(ctx, includeHidden)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return parents, nil
}

func (s *AdminService) UpdateParent(ctx context.Context, id string, params model.UpdateParentParams) (*model.Parent, error) {
	parent, err := s.parentRepo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if parent == nil {
		return nil, apperrors.NotFound("Parent")
	}
	return parent, nil
}

// SetParentHidden soft-removes a parent from active rosters without touching
// their contribution history.
func (s *AdminService) SetParentHidden(ctx context.Context, id string, hidden bool) (*model.Parent, error) {
	parent, err := s.parentRepo.SetHidden(ctx, id, hidden)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if parent == nil {
		return nil, apperrors.NotFound("Parent")
	}
	log.Info().Str("parentId", id).Bool("hidden", hidden).Msg("parent visibility changed")
	return parent, nil
}

// ResetParentPassword assigns a fresh temporary password and re-arms the
// rotation gate, dropping the parent's active sessions.
func (s *AdminService) ResetParentPassword(ctx context.Context, id, newPassword string) (string, error) {
	parent, err := s.parentRepo.FindByID(ctx, id)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if parent == nil {
		return "", apperrors.NotFound("Parent")
	}

	if newPassword == "" {
		newPassword, err = util.GenerateTempPassword(util.TempPasswordLength)
		if err != nil {
			return "", apperrors.Internal("Failed to generate temporary password").WithCause(err)
		}
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return "", apperrors.Internal("Failed to hash password").WithCause(err)
	}

	if err := s.parentRepo.SetCredential(ctx, id, hash, true); err != nil {
		return "", apperrors.Database(err)
	}
	if err := s.parentSessionRepo.DeleteByParentID(ctx, id); err != nil {
		return "", apperrors.Database(err)
	}

	if err := s.mailer.SendTemporaryPassword(ctx, parent.Email, parent.Name, newPassword); err != nil {
		log.Error().Err(err).Str("parentId", id).Msg("failed to send temporary password email")
	}

	log.Info().Str("parentId", id).Msg("parent password reset by admin")
	return newPassword, nil
}

// Campaigns

func (s *AdminService) CreateCampaign(ctx context.Context, params model.CreateCampaignParams) (*model.Campaign, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, apperrors.MissingRequired("title")
	}
	if params.TargetAmount <= 0 {
		return nil, apperrors.ValidationError("target amount must be positive")
	}
	campaign, err := s.campaignRepo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	log.Info().Str("campaignId", campaign.ID).Str("title", campaign.Title).Msg("campaign created")
	return campaign, nil
}

// UpdateCampaign applies edits; closed campaigns accept description changes
// only, since the target amount is fixed for reconciliation purposes.
func (s *AdminService) UpdateCampaign(ctx context.Context, id string, params model.UpdateCampaignParams) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if campaign == nil {
		return nil, apperrors.NotFound("Campaign")
	}
	if campaign.IsClosed && (params.Title != nil || params.TargetAmount != nil) {
		return nil, apperrors.CampaignClosed()
	}

	updated, err := s.campaignRepo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("Campaign")
	}
	return updated, nil
}

// CloseCampaign excludes the campaign from new-contribution creation while
// keeping it visible in history. Closing twice is a no-op.
func (s *AdminService) CloseCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.Close(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if campaign == nil {
		return nil, apperrors.NotFound("Campaign")
	}
	log.Info().Str("campaignId", id).Msg("campaign closed")
	return campaign, nil
}

// Reconciliation views

// CampaignOverviews builds the admin list: campaigns with their
// contributions, the unpaid badge, and the settled flag. The default list
// carries open campaigns only; includeClosed brings closed campaigns back as
// history. Settled campaigns are hidden unless showSettled is set.
func (s *AdminService) CampaignOverviews(ctx context.Context, includeClosed, showSettled bool) ([]CampaignOverview, error) {
	var campaigns []model.Campaign
	var err error
	if includeClosed {
		campaigns, err = s.campaignRepo.List(ctx)
	} else {
		campaigns, err = s.campaignRepo.ListOpen(ctx)
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	parents, err := s.parentRepo.List(ctx, false)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	overviews := make([]CampaignOverview, 0, len(campaigns))
	for _, campaign := range campaigns {
		contributions, err := s.ledger.ListByCampaign(ctx, campaign.ID)
		if err != nil {
			return nil, err
		}
		settled := IsSettled(parents, contributions)
		if settled && !showSettled {
			continue
		}
		overviews = append(overviews, CampaignOverview{
			Campaign:      campaign,
			Contributions: contributions,
			UnpaidCount:   UnpaidCount(parents, contributions),
			Settled:       settled,
		})
	}
	return overviews, nil
}

// CampaignRoster returns the per-parent joined status for one campaign.
func (s *AdminService) CampaignRoster(ctx context.Context, campaignID string, includeHidden bool) (*Roster, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if campaign == nil {
		return nil, apperrors.NotFound("Campaign")
	}

	parents, err := s.parentRepo.List(ctx, includeHidden)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	contributions, err := s.ledger.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	return &Roster{
		Campaign: *campaign,
		Rows:     BuildRoster(parents, contributions),
	}, nil
}
