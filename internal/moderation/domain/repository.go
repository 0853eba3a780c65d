package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, word *BannedWord) error
	FindAll(ctx context.Context, db *gorm.DB) ([]BannedWord, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*BannedWord, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
