package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Consumer is the buying-side profile of a user. It exists lazily: the row is
// created the first time the user needs a gateway customer.
type Consumer struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID snowflake.ID `gorm:"uniqueIndex;not null" json:"user_id"`

	// CustomerRef is the card processor's customer identifier.
	CustomerRef string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Consumer) TableName() string { return "consumers" }
