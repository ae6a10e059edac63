package uow

import (
	"context"

	"trustlend-backend/internal/domain/agreement"
	"trustlend-backend/internal/domain/event"
	"trustlend-backend/internal/domain/trust"
)

type Repos struct {
	Agreements  agreement.Repository
	Penalties   agreement.PenaltyRepository
	TrustScores trust.Repository
	Events      event.Repository
}

// UnitOfWork runs a set of repository calls as one all-or-nothing unit. Every
// mutating agreement/registry operation goes through here: either all of its
// effects commit, or none do, so callers may retry safely.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the agreement row first, then pass it in
	WithinAgreementTx(ctx context.Context, agreementID string, fn func(r Repos, a *agreement.Agreement) error) error
}
