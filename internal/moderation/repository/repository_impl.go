package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/moderation/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, word *domain.BannedWord) error {
	return db.WithContext(ctx).Create(word).Error
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.BannedWord, error) {
	var words []domain.BannedWord
	err := db.WithContext(ctx).Order("word ASC").Find(&words).Error
	return words, err
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.BannedWord, error) {
	var word domain.BannedWord
	err := db.WithContext(ctx).First(&word, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &word, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.BannedWord{}, "id = ?", id).Error
}
