package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Payment is one captured charge against an order. Orders normally carry a
// single payment; retry flows may accumulate more. Amount equals the order
// total at capture time.
type Payment struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID    snowflake.ID `gorm:"index;not null" json:"order_id"`
	ConsumerID snowflake.ID `gorm:"index;not null" json:"consumer_id"`

	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency string          `gorm:"type:text;not null;default:usd" json:"currency"`

	CustomerRef      string `gorm:"type:text" json:"-"`
	PaymentMethodRef string `gorm:"type:text" json:"-"`
	ChargeRef        string `gorm:"type:text" json:"-"`

	Refunded   bool       `gorm:"not null;default:false" json:"refunded"`
	RefundedAt *time.Time `json:"refunded_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
