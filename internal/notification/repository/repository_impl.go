package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/notification/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, notification *domain.Notification) error {
	return db.WithContext(ctx).Create(notification).Error
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Notification, error) {
	var notification domain.Notification
	err := db.WithContext(ctx).First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *repo) MarkSeen(ctx context.Context, db *gorm.DB, userID snowflake.ID, ids ...snowflake.ID) error {
	tx := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false)
	if len(ids) > 0 {
		tx = tx.Where("id IN ?", ids)
	}
	return tx.Update("seen", true).Error
}
