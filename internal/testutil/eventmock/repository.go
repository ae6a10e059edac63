package eventmock

import (
	"context"

	"trustlend-backend/internal/domain/event"
)

// Repo is a function-backed mock for event.Repository. With no functions set
// it records appends in memory, which is what most tests want.
type Repo struct {
	AppendFn          func(ctx context.Context, e *event.Event) error
	ListByAgreementFn func(ctx context.Context, agreementID string) ([]event.Event, error)

	Appended []event.Event
}

var _ event.Repository = (*Repo)(nil)

func (m *Repo) Append(ctx context.Context, e *event.Event) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.Appended = append(m.Appended, *e)
	return nil
}

func (m *Repo) ListByAgreement(ctx context.Context, agreementID string) ([]event.Event, error) {
	if m.ListByAgreementFn != nil {
		return m.ListByAgreementFn(ctx, agreementID)
	}
	var out []event.Event
	for _, e := range m.Appended {
		if e.AgreementID == agreementID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Types lists the appended event types in order.
func (m *Repo) Types() []string {
	out := make([]string, 0, len(m.Appended))
	for _, e := range m.Appended {
		out = append(out, e.Type)
	}
	return out
}
