package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/consumer/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, consumer *domain.Consumer) error {
	return db.WithContext(ctx).Create(consumer).Error
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Consumer, error) {
	var c domain.Consumer
	err := db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, consumer *domain.Consumer) error {
	return db.WithContext(ctx).Save(consumer).Error
}
