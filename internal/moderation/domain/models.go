package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// BannedWord is a single word screened out of user-authored text.
type BannedWord struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Word      string       `gorm:"uniqueIndex;not null" json:"word"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (BannedWord) TableName() string { return "banned_words" }
