package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertCategory(ctx context.Context, db *gorm.DB, category *Category) error
	FindCategories(ctx context.Context, db *gorm.DB) ([]Category, error)
	FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	DeleteCategory(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertOccasion(ctx context.Context, db *gorm.DB, occasion *Occasion) error
	FindOccasions(ctx context.Context, db *gorm.DB) ([]Occasion, error)
	FindOccasionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Occasion, error)
	DeleteOccasion(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
