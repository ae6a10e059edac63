package mysql

import (
	"context"

	agreementDomain "trustlend-backend/internal/domain/agreement"

	"gorm.io/gorm"
)

type PenaltyRepository struct{ db *gorm.DB }

func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository { return &PenaltyRepository{db: db} }

func (r *PenaltyRepository) Create(ctx context.Context, p *agreementDomain.Penalty) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PenaltyRepository) ListByAgreement(ctx context.Context, agreementID uint64) ([]agreementDomain.Penalty, error) {
	var out []agreementDomain.Penalty
	res := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		Order("period_index ASC").
		Find(&out)
	return out, res.Error
}

func (r *PenaltyRepository) CountByAgreement(ctx context.Context, agreementID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&agreementDomain.Penalty{}).
		Where("agreement_id = ?", agreementID).
		Count(&n)
	return n, res.Error
}
