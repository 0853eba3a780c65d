package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/chat/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertChannel(ctx context.Context, db *gorm.DB, channel *domain.ChatChannel) error {
	return db.WithContext(ctx).Create(channel).Error
}

func (r *repo) FindChannelByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ChatChannel, error) {
	var channel domain.ChatChannel
	err := db.WithContext(ctx).First(&channel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

func (r *repo) FindChannelByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*domain.ChatChannel, error) {
	var channel domain.ChatChannel
	err := db.WithContext(ctx).First(&channel, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

func (r *repo) FindChannelsForUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.ChatChannel, error) {
	var channels []domain.ChatChannel
	err := db.WithContext(ctx).
		Where("consumer_id = ? OR contributor_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&channels).Error
	return channels, err
}

func (r *repo) InsertMessage(ctx context.Context, db *gorm.DB, message *domain.ChatMessage) error {
	return db.WithContext(ctx).Create(message).Error
}

func (r *repo) FindMessages(ctx context.Context, db *gorm.DB, channelID snowflake.ID) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	err := db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *repo) MarkRead(ctx context.Context, db *gorm.DB, channelID, userID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("channel_id = ? AND sender_id <> ? AND read = ?", channelID, userID, false).
		Update("read", true).Error
}

func (r *repo) CountUnread(ctx context.Context, db *gorm.DB, channelID, userID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("channel_id = ? AND sender_id <> ? AND read = ?", channelID, userID, false).
		Count(&count).Error
	return count, err
}
