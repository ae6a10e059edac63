package asset

import (
	"context"
	"errors"
)

// ErrRejected signals the issuer declined a transfer (insufficient balance or
// allowance).
var ErrRejected = errors.New("asset issuer rejected transfer")

// Transfer is the external fungible-asset capability. Pull model: the
// borrower pre-authorizes the agreement (spender) to move funds; the service
// never holds custody.
type Transfer interface {
	BalanceOf(ctx context.Context, owner string) (uint64, error)
	Allowance(ctx context.Context, owner, spender string) (uint64, error)
	TransferFrom(ctx context.Context, spender, from, to string, amount uint64) error
}
