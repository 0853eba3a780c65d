package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidPercent = errors.New("booking fee percent must be between 0 and 100")

type Service interface {
	// CurrentPercent returns the active booking fee percentage.
	CurrentPercent(ctx context.Context) (decimal.Decimal, error)

	// SetPercent replaces the booking fee percentage. Admin only.
	SetPercent(ctx context.Context, percent decimal.Decimal) (*BookingFee, error)
}
