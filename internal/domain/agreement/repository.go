package agreement

import "context"

type Repository interface {
	Create(ctx context.Context, a *Agreement) error
	GetByAgreementID(ctx context.Context, agreementID string) (*Agreement, error)
	// GetByAgreementIDForUpdate locks the row for the duration of the
	// surrounding transaction.
	GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*Agreement, error)
	Save(ctx context.Context, a *Agreement) error
	ListByBorrower(ctx context.Context, borrowerID string) ([]Agreement, error)
	ListByLender(ctx context.Context, lenderID string) ([]Agreement, error)
	ListByAgreementIDs(ctx context.Context, agreementIDs []string) ([]Agreement, error)
	Count(ctx context.Context) (int64, error)
	CountByBorrower(ctx context.Context, borrowerID string) (int64, error)
	CountByLender(ctx context.Context, lenderID string) (int64, error)
}

type PenaltyRepository interface {
	Create(ctx context.Context, p *Penalty) error
	// ListByAgreement returns penalties for the numeric agreement id, ordered
	// by period index.
	ListByAgreement(ctx context.Context, agreementID uint64) ([]Penalty, error)
	CountByAgreement(ctx context.Context, agreementID uint64) (int64, error)
}
