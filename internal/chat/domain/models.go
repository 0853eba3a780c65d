package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ChatChannel links the two parties of a paid order to a realtime channel.
// At most one channel exists per order.
type ChatChannel struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID snowflake.ID `gorm:"uniqueIndex;not null" json:"order_id"`

	// ExternalID is the realtime network's channel name.
	ExternalID string `gorm:"uniqueIndex;not null" json:"external_id"`

	ConsumerID    snowflake.ID `gorm:"index;not null" json:"consumer_id"`
	ContributorID snowflake.ID `gorm:"index;not null" json:"contributor_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ChatChannel) TableName() string { return "chat_channels" }

// ChatMessage is append-only; only the read flag changes after send.
type ChatMessage struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ChannelID snowflake.ID `gorm:"index;not null" json:"channel_id"`
	SenderID  snowflake.ID `gorm:"index;not null" json:"sender_id"`

	Text     string `gorm:"type:text" json:"text,omitempty"`
	FileURL  string `gorm:"type:text" json:"file_url,omitempty"`
	FileType string `gorm:"type:text" json:"file_type,omitempty"`

	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// UnreadSummary pairs a channel with its unread count for one user.
type UnreadSummary struct {
	Channel ChatChannel `json:"channel"`
	Unread  int64       `json:"unread"`
}
