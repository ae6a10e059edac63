package trust

import "context"

type Repository interface {
	// ApplyDelta adds delta (can be negative) to the borrower's running
	// score, creating the row at delta for unseen borrowers.
	ApplyDelta(ctx context.Context, borrowerID string, delta int64) error
	// Get returns 0 for unseen borrowers.
	Get(ctx context.Context, borrowerID string) (int64, error)
}
