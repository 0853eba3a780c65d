package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]Payment, error)
	Update(ctx context.Context, db *gorm.DB, payment *Payment) error
}
