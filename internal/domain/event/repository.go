package event

import "context"

type Repository interface {
	Append(ctx context.Context, e *Event) error
	// ListByAgreement returns events for the public agreement id in append
	// order.
	ListByAgreement(ctx context.Context, agreementID string) ([]Event, error)
}
