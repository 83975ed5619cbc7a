package model

import (
	"time"
)

type Campaign struct {
	ID           string     `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  *string    `db:"description" json:"description,omitempty"`
	TargetAmount float64    `db:"target_amount" json:"targetAmount"`
	DueDate      *time.Time `db:"due_date" json:"dueDate,omitempty"`
	IsClosed     bool       `db:"is_closed" json:"isClosed"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}

type CreateCampaignParams struct {
	Title        string
	Description  *string
	TargetAmount float64
	DueDate      *time.Time
}

type UpdateCampaignParams struct {
	Title        *string
	Description  *string
	TargetAmount *float64
	DueDate      *time.Time
}
