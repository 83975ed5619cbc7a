package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/skarbek/treasury-server-go/internal/model"
)

type ContributionRepository interface {
	FindByPair(ctx context.Context, campaignID, parentID string) (*model.Contribution, error)
	// Ensure creates a pending record for (campaign, parent) if none exists and
	// returns the record either way. The UNIQUE constraint on the pair makes
	// concurrent calls safe without locking.
	Ensure(ctx context.Context, params model.EnsureContributionParams) (*model.Contribution, error)
	// MarkPaid flips an existing record to paid. It never creates a record and
	// is a no-op on records that are already paid.
	MarkPaid(ctx context.Context, campaignID, parentID string, amount float64, note *string) (*model.Contribution, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]model.Contribution, error)
	ListByParent(ctx context.Context, parentID string) ([]model.Contribution, error)
}

type contributionRepo struct {
	db *sqlx.DB
}

func NewContributionRepository(db *sqlx.DB) ContributionRepository {
	return &contributionRepo{db: db}
}

func (r *contributionRepo) FindByPair(ctx context.Context, campaignID, parentID string) (*model.Contribution, error) {
	var contribution model.Contribution
	err := r.db.GetContext(ctx, &contribution, `
		SELECT * FROM contributions WHERE campaign_id = $1 AND parent_id = $2
	`, campaignID, parentID)
	return HandleNotFound(&contribution, err)
}

func (r *contributionRepo) Ensure(ctx context.Context, params model.EnsureContributionParams) (*model.Contribution, error) {
	var contribution model.Contribution
	err := r.db.GetContext(ctx, &contribution, `
		INSERT INTO contributions (campaign_id, parent_id, amount_expected, note)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (campaign_id, parent_id) DO NOTHING
		RETURNING *
	`, params.CampaignID, params.ParentID, params.AmountExpected, params.Note)
	created, err := HandleNotFound(&contribution, err)
	if err != nil {
		return nil, err
	}
	if created != nil {
		return created, nil
	}
	// Lost the insert race or the record predates this call; either way the
	// existing record is returned unchanged.
	return r.FindByPair(ctx, params.CampaignID, params.ParentID)
}

func (r *contributionRepo) MarkPaid(ctx context.Context, campaignID, parentID string, amount float64, note *string) (*model.Contribution, error) {
	var contribution model.Contribution
	err := r.db.GetContext(ctx, &contribution, `
		UPDATE contributions
		SET amount_paid = CASE WHEN status = 'paid' THEN amount_paid ELSE $3 END,
		    note = CASE WHEN status = 'paid' THEN note ELSE COALESCE($4, note) END,
		    paid_at = COALESCE(paid_at, NOW()),
		    status = 'paid'
		WHERE campaign_id = $1 AND parent_id = $2
		RETURNING *
	`, campaignID, parentID, amount, note)
	return HandleNotFound(&contribution, err)
}

func (r *contributionRepo) ListByCampaign(ctx context.Context, campaignID string) ([]model.Contribution, error) {
	contributions := []model.Contribution{}
	err := r.db.SelectContext(ctx, &contributions, `
		SELECT * FROM contributions WHERE campaign_id = $1 ORDER BY created_at
	`, campaignID)
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

func (r *contributionRepo) ListByParent(ctx context.Context, parentID string) ([]model.Contribution, error) {
	contributions := []model.Contribution{}
	err := r.db.SelectContext(ctx, &contributions, `
		SELECT * FROM contributions WHERE parent_id = $1 ORDER BY created_at
	`, parentID)
	if err != nil {
		return nil, err
	}
	return contributions, nil
}
