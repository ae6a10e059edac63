package registry

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	domain "trustlend-backend/internal/domain/agreement"
	domainEvent "trustlend-backend/internal/domain/event"
	"trustlend-backend/internal/domain/trust"
	"trustlend-backend/internal/domain/uow"
	"trustlend-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	RoleBorrower = "borrower"
	RoleLender   = "lender"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// Upper bounds keeping the schedule arithmetic (expected-by-period products,
// deadline sums) inside integer range.
const (
	maxPrincipal    = uint64(1) << 40
	maxInstallments = uint64(10_000)
	maxDurationSecs = uint64(100 * 365 * 24 * 60 * 60)
)

// Usecase creates agreements, indexes them by participant and owns the
// cross-loan trust-score state. It is the sole authority over reputation
// deltas: they are accepted only for agreements it created itself.
type Usecase struct {
	agreements domain.Repository
	scores     trust.Repository
	uow        uow.UnitOfWork
	now        func() time.Time
}

func NewUsecase(agreements domain.Repository, scores trust.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		agreements: agreements,
		scores:     scores,
		uow:        tx,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create instantiates an agreement with the caller as lender. The installment
// interval is duration/installments, integer-truncated; the remainder stays
// unaccounted for, so the final overdue threshold uses the truncated value.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*AgreementDTO, error) {
	switch {
	case !reHex32.MatchString(in.CallerID):
		return nil, fmt.Errorf("%w: lender id must be 32-char hex", ErrInvalidInput)
	case !reHex32.MatchString(in.BorrowerID):
		return nil, fmt.Errorf("%w: borrower id must be 32-char hex", ErrInvalidInput)
	case in.CallerID == in.BorrowerID:
		return nil, fmt.Errorf("%w: lender and borrower must differ", ErrInvalidInput)
	case in.Principal == 0:
		return nil, fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	case in.Principal > maxPrincipal:
		return nil, fmt.Errorf("%w: principal exceeds the supported maximum", ErrInvalidInput)
	case in.TotalInstallments == 0:
		return nil, fmt.Errorf("%w: installments must be positive", ErrInvalidInput)
	case in.TotalInstallments > maxInstallments:
		return nil, fmt.Errorf("%w: installments exceed the supported maximum", ErrInvalidInput)
	case in.InterestPercent > 100 || in.LateFeePercent > 100:
		return nil, fmt.Errorf("%w: percent fields are on a 0-100 scale", ErrInvalidInput)
	case in.DurationSecs > maxDurationSecs:
		return nil, fmt.Errorf("%w: duration exceeds the supported maximum", ErrInvalidInput)
	case in.DurationSecs/in.TotalInstallments == 0:
		return nil, fmt.Errorf("%w: duration must cover at least one second per installment", ErrInvalidInput)
	}

	a := &domain.Agreement{
		AgreementID:         id.NewID32(),
		LenderID:            in.CallerID,
		BorrowerID:          in.BorrowerID,
		AssetCode:           in.AssetCode,
		Principal:           in.Principal,
		InterestPercent:     in.InterestPercent,
		LateFeePercent:      in.LateFeePercent,
		TotalInstallments:   in.TotalInstallments,
		DurationSecs:        in.DurationSecs,
		InstallmentInterval: in.DurationSecs / in.TotalInstallments,
		StartTimestamp:      u.now().Unix(),
		Valid:               true,
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Agreements.Create(ctx, a); err != nil {
			return err
		}
		e, err := domainEvent.New(a.AgreementID, domainEvent.TypeLoanCreated, loanCreatedPayload{
			LenderID:          a.LenderID,
			BorrowerID:        a.BorrowerID,
			AssetCode:         a.AssetCode,
			Principal:         a.Principal,
			InterestPercent:   a.InterestPercent,
			LateFeePercent:    a.LateFeePercent,
			TotalInstallments: a.TotalInstallments,
			DurationSecs:      a.DurationSecs,
		})
		if err != nil {
			return err
		}
		return r.Events.Append(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, agreementID string) (*AgreementDTO, error) {
	a, err := u.agreements.GetByAgreementID(ctx, agreementID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Total(ctx context.Context) (int64, error) {
	return u.agreements.Count(ctx)
}

// ListByUser returns the user's agreements for one role, optionally filtered
// by status, in creation order.
func (u *Usecase) ListByUser(ctx context.Context, userID, role string, status domain.Status) ([]AgreementDTO, error) {
	list, err := u.listByRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	out := make([]AgreementDTO, 0, len(list))
	for i := range list {
		if status != "" && list[i].Status() != status {
			continue
		}
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

func (u *Usecase) CountByUser(ctx context.Context, userID, role string) (int64, error) {
	switch role {
	case RoleBorrower:
		return u.agreements.CountByBorrower(ctx, userID)
	case RoleLender:
		return u.agreements.CountByLender(ctx, userID)
	default:
		return 0, fmt.Errorf("%w: role must be %q or %q", ErrInvalidInput, RoleBorrower, RoleLender)
	}
}

// FilterByStatus returns the subset of the given agreement ids whose current
// status matches, preserving relative order. Unknown ids are skipped.
func (u *Usecase) FilterByStatus(ctx context.Context, agreementIDs []string, status domain.Status) ([]string, error) {
	list, err := u.agreements.ListByAgreementIDs(ctx, agreementIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Agreement, len(list))
	for i := range list {
		byID[list[i].AgreementID] = &list[i]
	}
	out := make([]string, 0, len(agreementIDs))
	for _, aid := range agreementIDs {
		if a, ok := byID[aid]; ok && a.Status() == status {
			out = append(out, aid)
		}
	}
	return out, nil
}

// TrustScore returns the borrower's running score; unseen borrowers score 0.
func (u *Usecase) TrustScore(ctx context.Context, borrowerID string) (int64, error) {
	return u.scores.Get(ctx, borrowerID)
}

// UpdateTrustScore applies a reputation delta on behalf of an agreement. The
// agreement must exist in the validity mapping (created by this registry and
// never revoked); anything else is rejected.
func (u *Usecase) UpdateTrustScore(ctx context.Context, agreementID string, delta int64) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Agreements.GetByAgreementID(ctx, agreementID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trust.ErrUnauthorizedCaller
		}
		if err != nil {
			return err
		}
		if !a.Valid {
			return trust.ErrUnauthorizedCaller
		}
		return r.TrustScores.ApplyDelta(ctx, a.BorrowerID, delta)
	})
}

func (u *Usecase) listByRole(ctx context.Context, userID, role string) ([]domain.Agreement, error) {
	switch role {
	case RoleBorrower:
		return u.agreements.ListByBorrower(ctx, userID)
	case RoleLender:
		return u.agreements.ListByLender(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrInvalidInput, RoleBorrower, RoleLender)
	}
}
