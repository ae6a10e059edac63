package agreementmock

import (
	"context"

	domain "trustlend-backend/internal/domain/agreement"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled ones return zero values.
type Repo struct {
	CreateFn                    func(ctx context.Context, a *domain.Agreement) error
	GetByAgreementIDFn          func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	GetByAgreementIDForUpdateFn func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	SaveFn                      func(ctx context.Context, a *domain.Agreement) error
	ListByBorrowerFn            func(ctx context.Context, borrowerID string) ([]domain.Agreement, error)
	ListByLenderFn              func(ctx context.Context, lenderID string) ([]domain.Agreement, error)
	ListByAgreementIDsFn        func(ctx context.Context, agreementIDs []string) ([]domain.Agreement, error)
	CountFn                     func(ctx context.Context) (int64, error)
	CountByBorrowerFn           func(ctx context.Context, borrowerID string) (int64, error)
	CountByLenderFn             func(ctx context.Context, lenderID string) (int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, a *domain.Agreement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAgreementID(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDFn != nil {
		return m.GetByAgreementIDFn(ctx, agreementID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDForUpdateFn != nil {
		return m.GetByAgreementIDForUpdateFn(ctx, agreementID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Agreement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByBorrower(ctx context.Context, borrowerID string) ([]domain.Agreement, error) {
	if m.ListByBorrowerFn != nil {
		return m.ListByBorrowerFn(ctx, borrowerID)
	}
	return nil, nil
}

func (m *Repo) ListByLender(ctx context.Context, lenderID string) ([]domain.Agreement, error) {
	if m.ListByLenderFn != nil {
		return m.ListByLenderFn(ctx, lenderID)
	}
	return nil, nil
}

func (m *Repo) ListByAgreementIDs(ctx context.Context, agreementIDs []string) ([]domain.Agreement, error) {
	if m.ListByAgreementIDsFn != nil {
		return m.ListByAgreementIDsFn(ctx, agreementIDs)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CountByBorrower(ctx context.Context, borrowerID string) (int64, error) {
	if m.CountByBorrowerFn != nil {
		return m.CountByBorrowerFn(ctx, borrowerID)
	}
	return 0, nil
}

func (m *Repo) CountByLender(ctx context.Context, lenderID string) (int64, error) {
	if m.CountByLenderFn != nil {
		return m.CountByLenderFn(ctx, lenderID)
	}
	return 0, nil
}

// PenaltyRepo is a function-backed mock for domain.PenaltyRepository.
type PenaltyRepo struct {
	CreateFn           func(ctx context.Context, p *domain.Penalty) error
	ListByAgreementFn  func(ctx context.Context, agreementID uint64) ([]domain.Penalty, error)
	CountByAgreementFn func(ctx context.Context, agreementID uint64) (int64, error)
}

var _ domain.PenaltyRepository = (*PenaltyRepo)(nil)

func (m *PenaltyRepo) Create(ctx context.Context, p *domain.Penalty) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *PenaltyRepo) ListByAgreement(ctx context.Context, agreementID uint64) ([]domain.Penalty, error) {
	if m.ListByAgreementFn != nil {
		return m.ListByAgreementFn(ctx, agreementID)
	}
	return nil, nil
}

func (m *PenaltyRepo) CountByAgreement(ctx context.Context, agreementID uint64) (int64, error) {
	if m.CountByAgreementFn != nil {
		return m.CountByAgreementFn(ctx, agreementID)
	}
	return 0, nil
}
