package agreement

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("agreement not found")
	ErrUnauthorized     = errors.New("caller is not allowed to perform this operation")
	ErrInvalidState     = errors.New("operation not valid for current agreement status")
	ErrNotYetOverdue    = errors.New("final installment period has not fully elapsed")
	ErrNothingDue       = errors.New("nothing due: effective payment is zero")
	ErrTransferRejected = errors.New("asset transfer rejected")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusRepaid    Status = "repaid"
	StatusDefaulted Status = "defaulted"
)

// Agreement is one installment loan. Created once, mutated for the loan's
// lifetime, never deleted: terminal agreements stay queryable.
// All money amounts are in the smallest asset unit; all math is integer math
// with truncation at each step.
type Agreement struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	AgreementID string `gorm:"size:32;uniqueIndex:ux_agreements_agreement_id" json:"agreement_id"`
	LenderID    string `gorm:"size:32;index:idx_agreements_lender" json:"lender_id"`
	BorrowerID  string `gorm:"size:32;index:idx_agreements_borrower" json:"borrower_id"`
	AssetCode   string `gorm:"size:64" json:"asset_code"`

	Principal         uint64 `gorm:"not null" json:"principal"`
	InterestPercent   uint64 `gorm:"not null" json:"interest_percent"`
	LateFeePercent    uint64 `gorm:"not null" json:"late_fee_percent"`
	TotalInstallments uint64 `gorm:"not null" json:"total_installments"`
	DurationSecs      uint64 `gorm:"not null" json:"duration_secs"`
	// DurationSecs / TotalInstallments, integer-truncated. The remainder is
	// unaccounted for: the final overdue threshold uses the truncated value.
	InstallmentInterval uint64 `gorm:"not null" json:"installment_interval"`
	StartTimestamp      int64  `gorm:"not null" json:"start_timestamp"`

	RepaidAmount        uint64 `gorm:"not null;default:0" json:"repaid_amount"`
	AccumulatedLateFees uint64 `gorm:"not null;default:0" json:"accumulated_late_fees"`
	MarkedDefault       bool   `gorm:"not null;default:false" json:"marked_default"`
	// Valid is set by the registry at creation and never revoked; trust-score
	// deltas are accepted only for valid agreements.
	Valid bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Agreement) TableName() string { return "agreements" }

// Penalty records one late-payment charge. One row per penalized installment
// index per agreement; the unique index is what makes the penalty check
// idempotent.
type Penalty struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	AgreementID uint64    `gorm:"not null;uniqueIndex:ux_penalties_agreement_period" json:"-"`
	PeriodIndex uint64    `gorm:"not null;uniqueIndex:ux_penalties_agreement_period" json:"period_index"`
	FeeAmount   uint64    `gorm:"not null" json:"fee_amount"`
	TrustDelta  int64     `gorm:"not null" json:"trust_delta"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Penalty) TableName() string { return "penalties" }

// TotalWithInterest is principal plus simple interest, before late fees.
func (a *Agreement) TotalWithInterest() uint64 {
	return a.Principal + a.Principal*a.InterestPercent/100
}

// TotalOwed is the full amount the borrower must repay. Monotonically
// non-decreasing: AccumulatedLateFees only grows.
func (a *Agreement) TotalOwed() uint64 {
	return a.TotalWithInterest() + a.AccumulatedLateFees
}

// InstallmentAmount is the nominal per-period amount (integer-truncated).
func (a *Agreement) InstallmentAmount() uint64 {
	return a.TotalWithInterest() / a.TotalInstallments
}

// ExpectedByPeriod is the cumulative repayment expected once period i has
// elapsed.
func (a *Agreement) ExpectedByPeriod(i uint64) uint64 {
	return a.TotalWithInterest() * i / a.TotalInstallments
}

// ElapsedPeriods counts fully elapsed installment periods at the given unix
// time, capped at TotalInstallments.
func (a *Agreement) ElapsedPeriods(now int64) uint64 {
	if a.InstallmentInterval == 0 || now <= a.StartTimestamp {
		return 0
	}
	n := uint64(now-a.StartTimestamp) / a.InstallmentInterval
	if n > a.TotalInstallments {
		n = a.TotalInstallments
	}
	return n
}

// FinalDeadline is the unix time after which the lender may mark default.
func (a *Agreement) FinalDeadline() int64 {
	return a.StartTimestamp + int64(a.TotalInstallments*a.InstallmentInterval)
}

// DueTimestamp is the legacy duration-based due date consumed by the external
// scheduler. Not authoritative for installment-level due dates.
func (a *Agreement) DueTimestamp() int64 {
	return a.StartTimestamp + int64(a.DurationSecs)
}

// Remaining is the outstanding amount; repayments are capped at this.
func (a *Agreement) Remaining() uint64 {
	return a.TotalOwed() - a.RepaidAmount
}

// Status derives the lifecycle stage. Repaid and defaulted are terminal.
func (a *Agreement) Status() Status {
	switch {
	case a.MarkedDefault:
		return StatusDefaulted
	case a.RepaidAmount >= a.TotalOwed():
		return StatusRepaid
	default:
		return StatusActive
	}
}

// LateCharge is one installment period in shortfall that has not been
// penalized yet.
type LateCharge struct {
	PeriodIndex    uint64 `json:"period_index"`
	FeeAmount      uint64 `json:"fee_amount"`
	ExpectedRepaid uint64 `json:"expected_repaid"`
}

// AssessLate returns the charges the late-payment check would apply at the
// given time, skipping already-penalized periods. Pure: no mutation. Returns
// nil once the agreement is terminal.
func (a *Agreement) AssessLate(now int64, penalized map[uint64]bool) []LateCharge {
	if a.Status() != StatusActive {
		return nil
	}
	fee := a.InstallmentAmount() * a.LateFeePercent / 100
	var out []LateCharge
	for i := uint64(1); i <= a.ElapsedPeriods(now); i++ {
		if penalized[i] {
			continue
		}
		expected := a.ExpectedByPeriod(i)
		if a.RepaidAmount < expected {
			out = append(out, LateCharge{PeriodIndex: i, FeeAmount: fee, ExpectedRepaid: expected})
		}
	}
	return out
}
