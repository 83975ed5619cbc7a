package model

import (
	"time"
)

type AdminSession struct {
	ID        string    `db:"id" json:"id"`
	TokenHash string    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateAdminSessionParams struct {
	TokenHash string
	ExpiresAt time.Time
}

// ParentSession carries a snapshot of must_change_password taken at issuance.
// The snapshot is advisory (display only); gating re-reads the parent row.
type ParentSession struct {
	ID                 string    `db:"id" json:"id"`
	TokenHash          string    `db:"token_hash" json:"-"`
	ParentID           string    `db:"parent_id" json:"parentId"`
	MustChangePassword bool      `db:"must_change_password" json:"mustChangePassword"`
	ExpiresAt          time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
}

type CreateParentSessionParams struct {
	TokenHash          string
	ParentID           string
	MustChangePassword bool
	ExpiresAt          time.Time
}
