package mysql

import (
	"context"
	"errors"

	trustDomain "trustlend-backend/internal/domain/trust"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrustScoreRepository struct{ db *gorm.DB }

func NewTrustScoreRepository(db *gorm.DB) *TrustScoreRepository {
	return &TrustScoreRepository{db: db}
}

// ApplyDelta upserts: first delta creates the row, later ones add to it.
func (r *TrustScoreRepository) ApplyDelta(ctx context.Context, borrowerID string, delta int64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "borrower_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score": gorm.Expr("score + ?", delta),
		}),
	}).Create(&trustDomain.TrustScore{BorrowerID: borrowerID, Score: delta}).Error
}

func (r *TrustScoreRepository) Get(ctx context.Context, borrowerID string) (int64, error) {
	var out trustDomain.TrustScore
	res := r.db.WithContext(ctx).Where("borrower_id = ?", borrowerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return out.Score, res.Error
}
