package agreement

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "trustlend-backend/internal/domain/agreement"
	"trustlend-backend/internal/domain/asset"
	domainEvent "trustlend-backend/internal/domain/event"
	"trustlend-backend/internal/domain/trust"
	"trustlend-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// Usecase is the per-loan settlement state machine. Every mutating operation
// runs inside one UnitOfWork transaction with the agreement row locked, so
// penalty accrual, asset transfer, trust-score posting and event emission
// commit together or not at all.
type Usecase struct {
	agreements domain.Repository
	penalties  domain.PenaltyRepository
	events     domainEvent.Repository
	uow        uow.UnitOfWork
	assets     asset.Transfer
	now        func() time.Time
}

func NewUsecase(agreements domain.Repository, penalties domain.PenaltyRepository, events domainEvent.Repository, tx uow.UnitOfWork, assets asset.Transfer) *Usecase {
	return &Usecase{
		agreements: agreements,
		penalties:  penalties,
		events:     events,
		uow:        tx,
		assets:     assets,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Repay applies a borrower payment. Order matters: the late-payment check runs
// first so a payment arriving at/after a missed deadline still gets the
// penalty locked in; then the payment is capped at the outstanding remainder
// (excess is never taken). A rejected transfer aborts the whole transaction,
// including penalty mutations staged earlier in the same call.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepaymentDTO, error) {
	now := u.now().Unix()
	var dto *RepaymentDTO

	err := u.uow.WithinAgreementTx(ctx, in.AgreementID, func(r uow.Repos, a *domain.Agreement) error {
		if in.CallerID != a.BorrowerID {
			return domain.ErrUnauthorized
		}
		if a.Status() == domain.StatusDefaulted {
			return domain.ErrInvalidState
		}

		if _, err := u.penalize(ctx, r, a, now); err != nil {
			return err
		}

		actual := in.Amount
		if remaining := a.Remaining(); actual > remaining {
			actual = remaining
		}
		if actual == 0 {
			return domain.ErrNothingDue
		}

		if err := u.assets.TransferFrom(ctx, a.AgreementID, a.BorrowerID, a.LenderID, actual); err != nil {
			// Only an issuer decline is a permanent rejection; outages and
			// network failures stay retriable for the submission layer.
			if errors.Is(err, asset.ErrRejected) {
				return fmt.Errorf("%w: %v", domain.ErrTransferRejected, err)
			}
			return fmt.Errorf("asset transfer: %w", err)
		}

		a.RepaidAmount += actual
		if err := appendEvent(ctx, r, a.AgreementID, domainEvent.TypePaymentApplied, paymentAppliedPayload{
			Payer:        a.BorrowerID,
			Amount:       actual,
			RepaidAmount: a.RepaidAmount,
		}); err != nil {
			return err
		}

		if a.Status() == domain.StatusRepaid {
			if err := appendEvent(ctx, r, a.AgreementID, domainEvent.TypeFullyRepaid, fullyRepaidPayload{
				BorrowerID:   a.BorrowerID,
				RepaidAmount: a.RepaidAmount,
			}); err != nil {
				return err
			}
			// Reward only a clean payoff. Penalized borrowers already took a
			// -1 per missed period; no extra delta at payoff time.
			n, err := r.Penalties.CountByAgreement(ctx, a.ID)
			if err != nil {
				return err
			}
			if n == 0 {
				if err := postTrustDelta(ctx, r, a, +1); err != nil {
					return err
				}
			}
		}

		if err := r.Agreements.Save(ctx, a); err != nil {
			return err
		}
		dto = &RepaymentDTO{
			AgreementID:  a.AgreementID,
			Amount:       actual,
			RepaidAmount: a.RepaidAmount,
			TotalOwed:    a.TotalOwed(),
			Status:       string(a.Status()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// MarkDefault latches the agreement into the defaulted state. Lender-only,
// and only once the final installment period has fully elapsed.
func (u *Usecase) MarkDefault(ctx context.Context, in MarkDefaultInput) (*AgreementDTO, error) {
	now := u.now().Unix()
	var dto *AgreementDTO

	err := u.uow.WithinAgreementTx(ctx, in.AgreementID, func(r uow.Repos, a *domain.Agreement) error {
		if in.CallerID != a.LenderID {
			return domain.ErrUnauthorized
		}
		if a.Status() != domain.StatusActive {
			return domain.ErrInvalidState
		}
		if now <= a.FinalDeadline() {
			return domain.ErrNotYetOverdue
		}

		// Lock in any outstanding penalties before freezing the owed amount.
		if _, err := u.penalize(ctx, r, a, now); err != nil {
			return err
		}

		a.MarkedDefault = true
		if err := postTrustDelta(ctx, r, a, -2); err != nil {
			return err
		}
		if err := appendEvent(ctx, r, a.AgreementID, domainEvent.TypeDefaultMarked, defaultMarkedPayload{
			LenderID:     a.LenderID,
			TotalOwed:    a.TotalOwed(),
			RepaidAmount: a.RepaidAmount,
		}); err != nil {
			return err
		}
		if err := r.Agreements.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CheckLatePayments runs the late-payment check. Callable by anyone: it only
// tightens state in the borrower's disfavor. Idempotent — already-penalized
// periods are skipped, terminal agreements are left untouched.
func (u *Usecase) CheckLatePayments(ctx context.Context, agreementID string) (*LateCheckDTO, error) {
	now := u.now().Unix()
	var dto *LateCheckDTO

	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		applied, err := u.penalize(ctx, r, a, now)
		if err != nil {
			return err
		}
		if len(applied) > 0 {
			if err := r.Agreements.Save(ctx, a); err != nil {
				return err
			}
		}
		dto = &LateCheckDTO{
			AgreementID:         a.AgreementID,
			Applied:             applied,
			AccumulatedLateFees: a.AccumulatedLateFees,
			TotalOwed:           a.TotalOwed(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// PreviewLatePayments mirrors the late-payment predicate without mutating
// anything or posting penalties.
func (u *Usecase) PreviewLatePayments(ctx context.Context, agreementID string) ([]domain.LateCharge, error) {
	now := u.now().Unix()
	a, err := u.getAgreement(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	penalized, err := u.penalizedSet(ctx, u.penalties, a.ID)
	if err != nil {
		return nil, err
	}
	return a.AssessLate(now, penalized), nil
}

func (u *Usecase) Get(ctx context.Context, agreementID string) (*AgreementDTO, error) {
	a, err := u.getAgreement(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Events(ctx context.Context, agreementID string) ([]domainEvent.Event, error) {
	if _, err := u.getAgreement(ctx, agreementID); err != nil {
		return nil, err
	}
	return u.events.ListByAgreement(ctx, agreementID)
}

func (u *Usecase) getAgreement(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	a, err := u.agreements.GetByAgreementID(ctx, agreementID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// penalize applies every unpenalized late charge at the given time: fee added
// permanently, penalty row created, -1 trust delta posted, events appended.
// The caller persists the mutated agreement.
func (u *Usecase) penalize(ctx context.Context, r uow.Repos, a *domain.Agreement, now int64) ([]domain.LateCharge, error) {
	penalized, err := u.penalizedSet(ctx, r.Penalties, a.ID)
	if err != nil {
		return nil, err
	}
	charges := a.AssessLate(now, penalized)
	for _, ch := range charges {
		if err := r.Penalties.Create(ctx, &domain.Penalty{
			AgreementID: a.ID,
			PeriodIndex: ch.PeriodIndex,
			FeeAmount:   ch.FeeAmount,
			TrustDelta:  -1,
		}); err != nil {
			return nil, err
		}
		a.AccumulatedLateFees += ch.FeeAmount
		if err := postTrustDelta(ctx, r, a, -1); err != nil {
			return nil, err
		}
		if err := appendEvent(ctx, r, a.AgreementID, domainEvent.TypeLatePenaltyApplied, latePenaltyPayload{
			PeriodIndex: ch.PeriodIndex,
			TrustDelta:  -1,
		}); err != nil {
			return nil, err
		}
		if err := appendEvent(ctx, r, a.AgreementID, domainEvent.TypeLateFeeAccumulated, lateFeePayload{
			PeriodIndex:         ch.PeriodIndex,
			FeeAmount:           ch.FeeAmount,
			AccumulatedLateFees: a.AccumulatedLateFees,
		}); err != nil {
			return nil, err
		}
	}
	return charges, nil
}

func (u *Usecase) penalizedSet(ctx context.Context, repo domain.PenaltyRepository, agreementID uint64) (map[uint64]bool, error) {
	rows, err := repo.ListByAgreement(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	set := make(map[uint64]bool, len(rows))
	for _, p := range rows {
		set[p.PeriodIndex] = true
	}
	return set, nil
}

// postTrustDelta posts a reputation delta for the agreement's borrower. The
// registry accepts deltas only for agreements it created (validity latch).
func postTrustDelta(ctx context.Context, r uow.Repos, a *domain.Agreement, delta int64) error {
	if !a.Valid {
		return trust.ErrUnauthorizedCaller
	}
	return r.TrustScores.ApplyDelta(ctx, a.BorrowerID, delta)
}

func appendEvent(ctx context.Context, r uow.Repos, agreementID, eventType string, payload any) error {
	e, err := domainEvent.New(agreementID, eventType, payload)
	if err != nil {
		return err
	}
	return r.Events.Append(ctx, e)
}
