package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/feedback/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, feedback *domain.Feedback) error {
	return db.WithContext(ctx).Create(feedback).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Feedback, error) {
	var feedback domain.Feedback
	err := db.WithContext(ctx).First(&feedback, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Feedback, error) {
	var feedbacks []domain.Feedback
	err := db.WithContext(ctx).Order("created_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Feedback, error) {
	var feedbacks []domain.Feedback
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, feedback *domain.Feedback) error {
	return db.WithContext(ctx).Save(feedback).Error
}

func (r *repo) MarkAllRead(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("admin_read = ?", false).
		Update("admin_read", true).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Feedback{}, "id = ?", id).Error
}
