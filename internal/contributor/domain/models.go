package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Contributor is a profile offering paid video creation, priced per turnaround tier.
type Contributor struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID     snowflake.ID  `gorm:"uniqueIndex;not null" json:"user_id"`
	Phone      string        `gorm:"type:text" json:"phone,omitempty"`
	State      string        `gorm:"type:text" json:"state,omitempty"`
	City       string        `gorm:"type:text" json:"city,omitempty"`
	Website    string        `gorm:"type:text" json:"website,omitempty"`
	CategoryID *snowflake.ID `gorm:"index" json:"category_id,omitempty"`

	NormalDeliveryPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"normal_delivery_price"`
	FastDeliveryPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"fast_delivery_price"`
	SameDayDeliveryPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"same_day_delivery_price"`

	// Gateway connect account for payouts, empty until onboarding completes.
	ConnectAccountID string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Contributor) TableName() string { return "contributors" }

// Turnaround selects which delivery price applies to an order.
type Turnaround string

const (
	TurnaroundNormal  Turnaround = "normal"
	TurnaroundFast    Turnaround = "fast"
	TurnaroundSameDay Turnaround = "same_day"
)

// ParseTurnaround validates a client-supplied turnaround value.
func ParseTurnaround(s string) (Turnaround, bool) {
	switch Turnaround(s) {
	case TurnaroundNormal, TurnaroundFast, TurnaroundSameDay:
		return Turnaround(s), true
	}
	return "", false
}

// PriceFor returns the video fee the contributor charges for a turnaround tier.
func (c Contributor) PriceFor(t Turnaround) (decimal.Decimal, bool) {
	switch t {
	case TurnaroundNormal:
		return c.NormalDeliveryPrice, true
	case TurnaroundFast:
		return c.FastDeliveryPrice, true
	case TurnaroundSameDay:
		return c.SameDayDeliveryPrice, true
	}
	return decimal.Zero, false
}

// ContributorPhotoVideo is a display-gallery attachment on a contributor profile.
type ContributorPhotoVideo struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ContributorID snowflake.ID `gorm:"index;not null" json:"contributor_id"`
	FileURL       string       `gorm:"type:text;not null" json:"file_url"`
	Title         string       `gorm:"type:text" json:"title,omitempty"`
	Description   string       `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

func (ContributorPhotoVideo) TableName() string { return "contributor_photos_videos" }
