package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrChannelNotFound = errors.New("chat channel not found")
	ErrNotParticipant  = errors.New("caller is not a channel participant")
	ErrEmptyMessage    = errors.New("message has no content")
)

type PublishRequest struct {
	ChannelID snowflake.ID `json:"-"`
	Text      string       `json:"text"`
	FileURL   string       `json:"file_url"`
	FileType  string       `json:"file_type"`
}

type MyChatsResponse struct {
	Chats       []UnreadSummary `json:"chats"`
	TotalUnread int64           `json:"total_unread"`
}

type Service interface {
	// Publish persists the message and fans it out to the realtime network.
	// A fan-out failure is returned but the stored message stays.
	Publish(ctx context.Context, req *PublishRequest) (*ChatMessage, error)

	Messages(ctx context.Context, channelID snowflake.ID) ([]ChatMessage, error)
	MarkRead(ctx context.Context, channelID snowflake.ID) error
	MyChats(ctx context.Context) (*MyChatsResponse, error)
}
