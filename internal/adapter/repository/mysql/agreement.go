package mysql

import (
	"context"

	agreementDomain "trustlend-backend/internal/domain/agreement"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AgreementRepository struct{ db *gorm.DB }

func NewAgreementRepository(db *gorm.DB) *AgreementRepository { return &AgreementRepository{db: db} }

func (r *AgreementRepository) Create(ctx context.Context, a *agreementDomain.Agreement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgreementRepository) Save(ctx context.Context, a *agreementDomain.Agreement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AgreementRepository) GetByAgreementID(ctx context.Context, agreementID string) (*agreementDomain.Agreement, error) {
	var out agreementDomain.Agreement
	res := r.db.WithContext(ctx).Where("agreement_id = ?", agreementID).First(&out)
	return &out, res.Error
}

func (r *AgreementRepository) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*agreementDomain.Agreement, error) {
	q := r.db.WithContext(ctx)
	// sqlite (in-memory tests) has no row locks and rejects FOR UPDATE.
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out agreementDomain.Agreement
	res := q.Where("agreement_id = ?", agreementID).First(&out)
	return &out, res.Error
}

func (r *AgreementRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]agreementDomain.Agreement, error) {
	var out []agreementDomain.Agreement
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AgreementRepository) ListByLender(ctx context.Context, lenderID string) ([]agreementDomain.Agreement, error) {
	var out []agreementDomain.Agreement
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AgreementRepository) ListByAgreementIDs(ctx context.Context, agreementIDs []string) ([]agreementDomain.Agreement, error) {
	if len(agreementIDs) == 0 {
		return nil, nil
	}
	var out []agreementDomain.Agreement
	res := r.db.WithContext(ctx).
		Where("agreement_id IN ?", agreementIDs).
		Find(&out)
	return out, res.Error
}

func (r *AgreementRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&agreementDomain.Agreement{}).Count(&n)
	return n, res.Error
}

func (r *AgreementRepository) CountByBorrower(ctx context.Context, borrowerID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&agreementDomain.Agreement{}).
		Where("borrower_id = ?", borrowerID).
		Count(&n)
	return n, res.Error
}

func (r *AgreementRepository) CountByLender(ctx context.Context, lenderID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&agreementDomain.Agreement{}).
		Where("lender_id = ?", lenderID).
		Count(&n)
	return n, res.Error
}
