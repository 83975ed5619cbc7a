package model

import (
	"time"
)

type Contribution struct {
	ID             string             `db:"id" json:"id"`
	CampaignID     string             `db:"campaign_id" json:"campaignId"`
	ParentID       string             `db:"parent_id" json:"parentId"`
	AmountExpected float64            `db:"amount_expected" json:"amountExpected"`
	AmountPaid     float64            `db:"amount_paid" json:"amountPaid"`
	Status         ContributionStatus `db:"status" json:"status"`
	Note           *string            `db:"note" json:"note,omitempty"`
	PaidAt         *time.Time         `db:"paid_at" json:"paidAt,omitempty"`
	CreatedAt      time.Time          `db:"created_at" json:"createdAt"`
}

type EnsureContributionParams struct {
	CampaignID     string
	ParentID       string
	AmountExpected float64
	Note           *string
}
