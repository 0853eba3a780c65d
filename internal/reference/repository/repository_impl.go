package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/reference/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertCategory(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) FindCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var categories []domain.Category
	err := db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *repo) FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Category, error) {
	var category domain.Category
	err := db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *repo) DeleteCategory(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}

func (r *repo) InsertOccasion(ctx context.Context, db *gorm.DB, occasion *domain.Occasion) error {
	return db.WithContext(ctx).Create(occasion).Error
}

func (r *repo) FindOccasions(ctx context.Context, db *gorm.DB) ([]domain.Occasion, error) {
	var occasions []domain.Occasion
	err := db.WithContext(ctx).Order("name ASC").Find(&occasions).Error
	return occasions, err
}

func (r *repo) FindOccasionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Occasion, error) {
	var occasion domain.Occasion
	err := db.WithContext(ctx).First(&occasion, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &occasion, nil
}

func (r *repo) DeleteOccasion(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Occasion{}, "id = ?", id).Error
}
