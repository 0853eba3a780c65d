package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, feedback *Feedback) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Feedback, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Feedback, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Feedback, error)
	Update(ctx context.Context, db *gorm.DB, feedback *Feedback) error
	MarkAllRead(ctx context.Context, db *gorm.DB) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
