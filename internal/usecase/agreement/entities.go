package agreement

import (
	"time"

	domain "trustlend-backend/internal/domain/agreement"
)

type RepayInput struct {
	AgreementID string
	CallerID    string
	Amount      uint64
}

type MarkDefaultInput struct {
	AgreementID string
	CallerID    string
}

type AgreementDTO struct {
	AgreementID         string    `json:"agreement_id"`
	LenderID            string    `json:"lender_id"`
	BorrowerID          string    `json:"borrower_id"`
	AssetCode           string    `json:"asset_code"`
	Principal           uint64    `json:"principal"`
	InterestPercent     uint64    `json:"interest_percent"`
	LateFeePercent      uint64    `json:"late_fee_percent"`
	TotalInstallments   uint64    `json:"total_installments"`
	InstallmentInterval uint64    `json:"installment_interval"`
	StartTimestamp      int64     `json:"start_timestamp"`
	DueTimestamp        int64     `json:"due_timestamp"`
	RepaidAmount        uint64    `json:"repaid_amount"`
	AccumulatedLateFees uint64    `json:"accumulated_late_fees"`
	TotalOwed           uint64    `json:"total_owed"`
	Remaining           uint64    `json:"remaining"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

type RepaymentDTO struct {
	AgreementID  string `json:"agreement_id"`
	Amount       uint64 `json:"amount"`
	RepaidAmount uint64 `json:"repaid_amount"`
	TotalOwed    uint64 `json:"total_owed"`
	Status       string `json:"status"`
}

type LateCheckDTO struct {
	AgreementID         string              `json:"agreement_id"`
	Applied             []domain.LateCharge `json:"applied"`
	AccumulatedLateFees uint64              `json:"accumulated_late_fees"`
	TotalOwed           uint64              `json:"total_owed"`
}

func toDTO(a *domain.Agreement) *AgreementDTO {
	return &AgreementDTO{
		AgreementID:         a.AgreementID,
		LenderID:            a.LenderID,
		BorrowerID:          a.BorrowerID,
		AssetCode:           a.AssetCode,
		Principal:           a.Principal,
		InterestPercent:     a.InterestPercent,
		LateFeePercent:      a.LateFeePercent,
		TotalInstallments:   a.TotalInstallments,
		InstallmentInterval: a.InstallmentInterval,
		StartTimestamp:      a.StartTimestamp,
		DueTimestamp:        a.DueTimestamp(),
		RepaidAmount:        a.RepaidAmount,
		AccumulatedLateFees: a.AccumulatedLateFees,
		TotalOwed:           a.TotalOwed(),
		Remaining:           a.Remaining(),
		Status:              string(a.Status()),
		CreatedAt:           a.CreatedAt,
	}
}

// Event payloads (spec'd notification fields).

type paymentAppliedPayload struct {
	Payer        string `json:"payer"`
	Amount       uint64 `json:"amount"`
	RepaidAmount uint64 `json:"repaid_amount"`
}

type fullyRepaidPayload struct {
	BorrowerID   string `json:"borrower_id"`
	RepaidAmount uint64 `json:"repaid_amount"`
}

type defaultMarkedPayload struct {
	LenderID     string `json:"lender_id"`
	TotalOwed    uint64 `json:"total_owed"`
	RepaidAmount uint64 `json:"repaid_amount"`
}

type latePenaltyPayload struct {
	PeriodIndex uint64 `json:"period_index"`
	TrustDelta  int64  `json:"trust_delta"`
}

type lateFeePayload struct {
	PeriodIndex         uint64 `json:"period_index"`
	FeeAmount           uint64 `json:"fee_amount"`
	AccumulatedLateFees uint64 `json:"accumulated_late_fees"`
}
