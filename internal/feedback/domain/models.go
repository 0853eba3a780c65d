package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Feedback is a message from a user to the platform operators.
type Feedback struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID snowflake.ID `gorm:"index;not null" json:"user_id"`
	Email  string       `gorm:"type:text" json:"email,omitempty"`

	Message string `gorm:"type:text;not null" json:"message"`

	Responded bool   `gorm:"not null;default:false" json:"responded"`
	Response  string `gorm:"type:text" json:"response,omitempty"`
	AdminRead bool   `gorm:"not null;default:false" json:"admin_read"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Feedback) TableName() string { return "feedbacks" }
