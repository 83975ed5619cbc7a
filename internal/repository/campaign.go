package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/skarbek/treasury-server-go/internal/model"
)

type CampaignRepository interface {
	FindByID(ctx context.Context, id string) (*model.Campaign, error)
	List(ctx context.Context) ([]model.Campaign, error)
	ListOpen(ctx context.Context) ([]model.Campaign, error)
	Create(ctx context.Context, params model.CreateCampaignParams) (*model.Campaign, error)
	Update(ctx context.Context, id string, params model.UpdateCampaignParams) (*model.Campaign, error)
	Close(ctx context.Context, id string) (*model.Campaign, error)
}

type campaignRepo struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) CampaignRepository {
	return &campaignRepo{db: db}
}

func (r *campaignRepo) FindByID(ctx context.Context, id string) (*model.Campaign, error) {
	var campaign model.Campaign
	err := r.db.GetContext(ctx, &campaign, `SELECT * FROM campaigns WHERE id = $1`, id)
	return HandleNotFound(&campaign, err)
}

func (r *campaignRepo) List(ctx context.Context) ([]model.Campaign, error) {
	campaigns := []model.Campaign{}
	err := r.db.SelectContext(ctx, &campaigns, `SELECT * FROM campaigns ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *campaignRepo) ListOpen(ctx context.Context) ([]model.Campaign, error) {
	campaigns := []model.Campaign{}
	err := r.db.SelectContext(ctx, &campaigns, `
		SELECT * FROM campaigns WHERE is_closed = FALSE ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *campaignRepo) Create(ctx context.Context, params model.CreateCampaignParams) (*model.Campaign, error) {
	var campaign model.Campaign
	err := r.db.GetContext(ctx, &campaign, `
		INSERT INTO campaigns (title, description, target_amount, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Title, params.Description, params.TargetAmount, params.DueDate)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepo) Update(ctx context.Context, id string, params model.UpdateCampaignParams) (*model.Campaign, error) {
	var campaign model.Campaign
	err := r.db.GetContext(ctx, &campaign, `
		UPDATE campaigns
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    target_amount = COALESCE($4, target_amount),
		    due_date = COALESCE($5, due_date)
		WHERE id = $1
		RETURNING *
	`, id, params.Title, params.Description, params.TargetAmount, params.DueDate)
	return HandleNotFound(&campaign, err)
}

func (r *campaignRepo) Close(ctx context.Context, id string) (*model.Campaign, error) {
	var campaign model.Campaign
	err := r.db.GetContext(ctx, &campaign, `
		UPDATE campaigns SET is_closed = TRUE WHERE id = $1
		RETURNING *
	`, id)
	return HandleNotFound(&campaign, err)
}
