package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// BookingFee is the platform's cut of each order, as a percentage of the
// video fee. The table holds at most one row; its absence falls back to the
// configured default.
type BookingFee struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	Percent   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percent"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (BookingFee) TableName() string { return "booking_fees" }
