package model

// ContributionStatus is the persisted status of a ledger record. A parent with
// no record at all is not "pending"; that case is PaymentAbsent below.
type ContributionStatus string

const (
	ContributionPending ContributionStatus = "pending"
	ContributionPaid    ContributionStatus = "paid"
)

// PaymentState is the three-valued per-parent status derived by the roster
// reconciler: absent (no ledger record), pending, or paid.
type PaymentState string

const (
	PaymentAbsent  PaymentState = "absent"
	PaymentPending PaymentState = "pending"
	PaymentPaid    PaymentState = "paid"
)

// StateForContribution maps a ledger record (or its absence) to a PaymentState.
func StateForContribution(c *Contribution) PaymentState {
	if c == nil {
		return PaymentAbsent
	}
	if c.Status == ContributionPaid {
		return PaymentPaid
	}
	return PaymentPending
}

// PrincipalKind distinguishes the two token audiences.
type PrincipalKind string

const (
	PrincipalAdmin  PrincipalKind = "admin"
	PrincipalParent PrincipalKind = "parent"
)
