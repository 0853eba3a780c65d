package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertChannel(ctx context.Context, db *gorm.DB, channel *ChatChannel) error
	FindChannelByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ChatChannel, error)
	FindChannelByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*ChatChannel, error)
	FindChannelsForUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]ChatChannel, error)

	InsertMessage(ctx context.Context, db *gorm.DB, message *ChatMessage) error
	FindMessages(ctx context.Context, db *gorm.DB, channelID snowflake.ID) ([]ChatMessage, error)

	// MarkRead flips the read flag on every message in the channel that was
	// not sent by userID.
	MarkRead(ctx context.Context, db *gorm.DB, channelID, userID snowflake.ID) error
	CountUnread(ctx context.Context, db *gorm.DB, channelID, userID snowflake.ID) (int64, error)
}
