package uowmock

import (
	"context"
	"errors"

	"trustlend-backend/internal/domain/agreement"
	"trustlend-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinAgreementTxFn func(ctx context.Context, agreementID string, fn func(r uow.Repos, a *agreement.Agreement) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a UoW that runs callbacks against fixed repos with no
// transactional semantics: "commit" is immediate, rollback is the caller's
// problem. Good enough for pure authorization/validation tests.
func Passthrough(r uow.Repos, getAgreement func(ctx context.Context, agreementID string) (*agreement.Agreement, error)) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinAgreementTxFn: func(ctx context.Context, agreementID string, fn func(r uow.Repos, a *agreement.Agreement) error) error {
			a, err := getAgreement(ctx, agreementID)
			if err != nil {
				return err
			}
			return fn(r, a)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinAgreementTx(ctx context.Context, agreementID string, fn func(r uow.Repos, a *agreement.Agreement) error) error {
	if m.WithinAgreementTxFn != nil {
		return m.WithinAgreementTxFn(ctx, agreementID, fn)
	}
	return errUnimplemented
}
