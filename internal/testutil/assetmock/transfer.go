package assetmock

import (
	"context"

	"trustlend-backend/internal/domain/asset"
)

// Transfer is a function-backed mock for asset.Transfer. Every call is
// recorded; with no functions set every transfer succeeds.
type Transfer struct {
	BalanceOfFn    func(ctx context.Context, owner string) (uint64, error)
	AllowanceFn    func(ctx context.Context, owner, spender string) (uint64, error)
	TransferFromFn func(ctx context.Context, spender, from, to string, amount uint64) error

	Transfers []TransferCall
}

type TransferCall struct {
	Spender string
	From    string
	To      string
	Amount  uint64
}

var _ asset.Transfer = (*Transfer)(nil)

func (m *Transfer) BalanceOf(ctx context.Context, owner string) (uint64, error) {
	if m.BalanceOfFn != nil {
		return m.BalanceOfFn(ctx, owner)
	}
	return 0, nil
}

func (m *Transfer) Allowance(ctx context.Context, owner, spender string) (uint64, error) {
	if m.AllowanceFn != nil {
		return m.AllowanceFn(ctx, owner, spender)
	}
	return 0, nil
}

func (m *Transfer) TransferFrom(ctx context.Context, spender, from, to string, amount uint64) error {
	m.Transfers = append(m.Transfers, TransferCall{Spender: spender, From: from, To: to, Amount: amount})
	if m.TransferFromFn != nil {
		return m.TransferFromFn(ctx, spender, from, to, amount)
	}
	return nil
}
