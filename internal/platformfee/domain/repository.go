package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// FindCurrent returns the singleton fee row, nil when never set.
	FindCurrent(ctx context.Context, db *gorm.DB) (*BookingFee, error)
	Upsert(ctx context.Context, db *gorm.DB, fee *BookingFee) error
}
