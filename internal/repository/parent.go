package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skarbek/treasury-server-go/internal/model"
)

type ParentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Parent, error)
	FindByEmail(ctx context.Context, email string) (*model.Parent, error)
	List(ctx context.Context, includeHidden bool) ([]model.Parent, error)
	Create(ctx context.Context, params model.CreateParentParams) (*model.Parent, error)
	Update(ctx context.Context, id string, params model.UpdateParentParams) (*model.Parent, error)
	SetHidden(ctx context.Context, id string, hidden bool) (*model.Parent, error)
	SetCredential(ctx context.Context, id, passwordHash string, mustChange bool) error
}

type parentRepo struct {
	db *sqlx.DB
}

func NewParentRepository(db *sqlx.DB) ParentRepository {
	return &parentRepo{db: db}
}

func (r *parentRepo) FindByID(ctx context.Context, id string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.GetContext(ctx, &parent, `SELECT * FROM parents WHERE id = $1`, id)
	return HandleNotFound(&parent, err)
}

func (r *parentRepo) FindByEmail(ctx context.Context, email string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.GetContext(ctx, &parent, `SELECT * FROM parents WHERE email = $1`, email)
	return HandleNotFound(&parent, err)
}

func (r *parentRepo) List(ctx context.Context, includeHidden bool) ([]model.Parent, error) {
	parents := []model.Parent{}
	query := `SELECT * FROM parents ORDER BY created_at`
	if !includeHidden {
		query = `SELECT * FROM parents WHERE is_hidden = FALSE ORDER BY created_at`
	}
	err := r.db.SelectContext(ctx, &parents, query)
	if err != nil {
		return nil, err
	}
	return parents, nil
}

func (r *parentRepo) Create(ctx context.Context, params model.CreateParentParams) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.GetContext(ctx, &parent, `
		INSERT INTO parents (name, email, password_hash, must_change_password)
		VALUES ($1, $2, $3, TRUE)
		RETURNING *
	`, params.Name, params.Email, params.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepo) Update(ctx context.Context, id string, params model.UpdateParentParams) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.GetContext(ctx, &parent, `
		UPDATE parents
		SET name = COALESCE($2, name), email = COALESCE($3, email)
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Email)
	return HandleNotFound(&parent, err)
}

func (r *parentRepo) SetHidden(ctx context.Context, id string, hidden bool) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.GetContext(ctx, &parent, `
		UPDATE parents SET is_hidden = $2 WHERE id = $1
		RETURNING *
	`, id, hidden)
	return HandleNotFound(&parent, err)
}

func (r *parentRepo) SetCredential(ctx context.Context, id, passwordHash string, mustChange bool) error {
	var changedAt *time.Time
	if !mustChange {
		now := time.Now()
		changedAt = &now
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE parents
		SET password_hash = $2, must_change_password = $3, password_changed_at = $4
		WHERE id = $1
	`, id, passwordHash, mustChange, changedAt)
	return err
}
