package mysql

import (
	"context"
	"errors"

	agreementDomain "trustlend-backend/internal/domain/agreement"
	"trustlend-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Agreements:  &AgreementRepository{db: tx},
		Penalties:   &PenaltyRepository{db: tx},
		TrustScores: &TrustScoreRepository{db: tx},
		Events:      &EventRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinAgreementTx(ctx context.Context, agreementID string, fn func(r uow.Repos, a *agreementDomain.Agreement) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the agreement row up-front to prevent races
		a, err := r.Agreements.GetByAgreementIDForUpdate(ctx, agreementID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return agreementDomain.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
