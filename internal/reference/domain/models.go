package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Category groups contributors for browsing and search.
type Category struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"uniqueIndex;not null" json:"name"`
	Icon      string       `gorm:"type:text" json:"icon,omitempty"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

// Occasion labels what an order is for (birthday, pep talk, roast).
type Occasion struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (Occasion) TableName() string { return "occasions" }
