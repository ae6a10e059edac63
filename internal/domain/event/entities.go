package event

import "time"

// Notification vocabulary consumed by downstream observers (status endpoint,
// polling scheduler).
const (
	TypeLoanCreated        = "loan_created"
	TypePaymentApplied     = "payment_applied"
	TypeFullyRepaid        = "fully_repaid"
	TypeDefaultMarked      = "default_marked"
	TypeLatePenaltyApplied = "late_penalty_applied"
	TypeLateFeeAccumulated = "late_fee_accumulated"
	// TypeRefundIssued exists in the vocabulary but no code path produces it:
	// overpayment is capped, never taken and refunded.
	TypeRefundIssued = "refund_issued"
)

// Event is one produced notification, appended in the same transaction as the
// state change it describes (outbox style).
type Event struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	EventID     string    `gorm:"size:32;uniqueIndex:ux_events_event_id" json:"event_id"`
	AgreementID string    `gorm:"size:32;index:idx_events_agreement" json:"agreement_id"`
	Type        string    `gorm:"size:64;not null" json:"type"`
	Payload     string    `gorm:"type:text" json:"payload"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "events" }
