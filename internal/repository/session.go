package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/skarbek/treasury-server-go/internal/model"
)

type AdminSessionRepository interface {
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error)
	Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type adminSessionRepo struct {
	db *sqlx.DB
}

func NewAdminSessionRepository(db *sqlx.DB) AdminSessionRepository {
	return &adminSessionRepo{db: db}
}

func (r *adminSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error) {
	var session model.AdminSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM admin_sessions
		WHERE token_hash = $1 AND expires_at > NOW()
	`, tokenHash)
	return HandleNotFound(&session, err)
}

func (r *adminSessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	var session model.AdminSession
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO admin_sessions (token_hash, expires_at)
		VALUES ($1, $2)
		RETURNING *
	`, params.TokenHash, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *adminSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE token_hash = $1`, tokenHash)
	return err
}

func (r *adminSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Parent Session Repository

type ParentSessionRepository interface {
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.ParentSession, error)
	Create(ctx context.Context, params model.CreateParentSessionParams) (*model.ParentSession, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByParentID(ctx context.Context, parentID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type parentSessionRepo struct {
	db *sqlx.DB
}

func NewParentSessionRepository(db *sqlx.DB) ParentSessionRepository {
	return &parentSessionRepo{db: db}
}

func (r *parentSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.ParentSession, error) {
	var session model.ParentSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM parent_sessions
		WHERE token_hash = $1 AND expires_at > NOW()
	`, tokenHash)
	return HandleNotFound(&session, err)
}

func (r *parentSessionRepo) Create(ctx context.Context, params model.CreateParentSessionParams) (*model.ParentSession, error) {
	var session model.ParentSession
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO parent_sessions (token_hash, parent_id, must_change_password, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.TokenHash, params.ParentID, params.MustChangePassword, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *parentSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM parent_sessions WHERE token_hash = $1`, tokenHash)
	return err
}

func (r *parentSessionRepo) DeleteByParentID(ctx context.Context, parentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM parent_sessions WHERE parent_id = $1`, parentID)
	return err
}

func (r *parentSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parent_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
