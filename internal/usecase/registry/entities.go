package registry

import (
	"time"

	domain "trustlend-backend/internal/domain/agreement"
)

type CreateInput struct {
	CallerID          string // becomes the lender
	BorrowerID        string
	AssetCode         string
	Principal         uint64
	DurationSecs      uint64
	InterestPercent   uint64
	LateFeePercent    uint64
	TotalInstallments uint64
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
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

type loanCreatedPayload struct {
	LenderID          string `json:"lender_id"`
	BorrowerID        string `json:"borrower_id"`
	AssetCode         string `json:"asset_code"`
	Principal         uint64 `json:"principal"`
	InterestPercent   uint64 `json:"interest_percent"`
	LateFeePercent    uint64 `json:"late_fee_percent"`
	TotalInstallments uint64 `json:"total_installments"`
	DurationSecs      uint64 `json:"duration_secs"`
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
		Status:              string(a.Status()),
		CreatedAt:           a.CreatedAt,
	}
}
