package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, consumer *Consumer) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Consumer, error)
	Update(ctx context.Context, db *gorm.DB, consumer *Consumer) error
}
