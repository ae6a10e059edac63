package trustmock

import (
	"context"

	"trustlend-backend/internal/domain/trust"
)

// Repo is a function-backed mock for trust.Repository.
type Repo struct {
	ApplyDeltaFn func(ctx context.Context, borrowerID string, delta int64) error
	GetFn        func(ctx context.Context, borrowerID string) (int64, error)
}

var _ trust.Repository = (*Repo)(nil)

func (m *Repo) ApplyDelta(ctx context.Context, borrowerID string, delta int64) error {
	if m.ApplyDeltaFn != nil {
		return m.ApplyDeltaFn(ctx, borrowerID, delta)
	}
	return nil
}

func (m *Repo) Get(ctx context.Context, borrowerID string) (int64, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, borrowerID)
	}
	return 0, nil
}
