package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/platformfee/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindCurrent(ctx context.Context, db *gorm.DB) (*domain.BookingFee, error) {
	var fee domain.BookingFee
	err := db.WithContext(ctx).Order("updated_at DESC").First(&fee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fee, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, fee *domain.BookingFee) error {
	return db.WithContext(ctx).Save(fee).Error
}
