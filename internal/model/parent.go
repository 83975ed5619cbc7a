package model

import (
	"time"
)

type Parent struct {
	ID                 string     `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Email              string     `db:"email" json:"email"`
	PasswordHash       string     `db:"password_hash" json:"-"`
	IsHidden           bool       `db:"is_hidden" json:"isHidden"`
	MustChangePassword bool       `db:"must_change_password" json:"mustChangePassword"`
	PasswordChangedAt  *time.Time `db:"password_changed_at" json:"passwordChangedAt,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
}

type CreateParentParams struct {
	Name         string
	Email        string
	PasswordHash string
}

type UpdateParentParams struct {
	Name  *string
	Email *string
}
