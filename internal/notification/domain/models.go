package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Notification is the in-app record of something that happened to the user.
// Push delivery is best effort; the row is the durable copy.
type Notification struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID snowflake.ID `gorm:"index;not null" json:"user_id"`

	Title    string            `gorm:"type:text;not null" json:"title"`
	Body     string            `gorm:"type:text" json:"body"`
	Metadata datatypes.JSONMap `json:"metadata,omitempty"`

	Seen      bool      `gorm:"not null;default:false" json:"seen"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
