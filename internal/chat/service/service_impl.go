package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/chat/domain"
	"github.com/blessnhq/blessn/internal/clock"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	"github.com/blessnhq/blessn/internal/observability/metrics"
	publisher "github.com/blessnhq/blessn/internal/providers/chat"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Moderation moderationdomain.Service
	Publisher  publisher.Publisher
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	moderation moderationdomain.Service
	publisher  publisher.Publisher
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("chat.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		moderation: p.Moderation,
		publisher:  p.Publisher,
		metrics:    p.Metrics,
	}
}

func (s *Service) Publish(ctx context.Context, req *domain.PublishRequest) (*domain.ChatMessage, error) {
	userID, channel, err := s.participant(ctx, req.ChannelID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	fileURL := strings.TrimSpace(req.FileURL)
	if text == "" && fileURL == "" {
		return nil, domain.ErrEmptyMessage
	}
	if err := s.moderation.Screen(ctx, text); err != nil {
		return nil, err
	}

	message := &domain.ChatMessage{
		ID:        s.genID.Generate(),
		ChannelID: channel.ID,
		SenderID:  userID,
		Text:      text,
		FileURL:   fileURL,
		FileType:  strings.TrimSpace(req.FileType),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertMessage(ctx, s.db, message); err != nil {
		return nil, err
	}
	s.metrics.RecordChatMessagePublished()

	if err := s.publisher.Publish(ctx, channel.ExternalID, message); err != nil {
		// The message is stored; the client can resync. Still surface the
		// fan-out failure so the sender knows delivery was not realtime.
		s.log.Warn("chat fan-out failed",
			zap.Int64("channel_id", int64(channel.ID)),
			zap.Error(err),
		)
		return message, err
	}
	return message, nil
}

func (s *Service) Messages(ctx context.Context, channelID snowflake.ID) ([]domain.ChatMessage, error) {
	if _, _, err := s.participant(ctx, channelID); err != nil {
		return nil, err
	}
	return s.repo.FindMessages(ctx, s.db, channelID)
}

func (s *Service) MarkRead(ctx context.Context, channelID snowflake.ID) error {
	userID, _, err := s.participant(ctx, channelID)
	if err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, s.db, channelID, userID)
}

func (s *Service) MyChats(ctx context.Context) (*domain.MyChatsResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}

	channels, err := s.repo.FindChannelsForUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := &domain.MyChatsResponse{Chats: make([]domain.UnreadSummary, 0, len(channels))}
	for _, channel := range channels {
		unread, err := s.repo.CountUnread(ctx, s.db, channel.ID, userID)
		if err != nil {
			return nil, err
		}
		resp.Chats = append(resp.Chats, domain.UnreadSummary{Channel: channel, Unread: unread})
		resp.TotalUnread += unread
	}
	return resp, nil
}

func (s *Service) participant(ctx context.Context, channelID snowflake.ID) (snowflake.ID, *domain.ChatChannel, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return 0, nil, userdomain.ErrInvalidUser
	}

	channel, err := s.repo.FindChannelByID(ctx, s.db, channelID)
	if err != nil {
		return 0, nil, err
	}
	if channel == nil {
		return 0, nil, domain.ErrChannelNotFound
	}
	if channel.ConsumerID != userID && channel.ContributorID != userID {
		return 0, nil, domain.ErrNotParticipant
	}
	return userID, channel, nil
}
