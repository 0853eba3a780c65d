package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/chat/domain"
	"github.com/blessnhq/blessn/internal/chat/repository"
	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/migration"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type moderationPass struct{}

func (moderationPass) Screen(context.Context, string) error { return nil }

func (moderationPass) AddWord(context.Context, string) (*moderationdomain.BannedWord, error) {
	return nil, nil
}

func (moderationPass) RemoveWord(context.Context, snowflake.ID) error { return nil }

func (moderationPass) ListWords(context.Context) ([]moderationdomain.BannedWord, error) {
	return nil, nil
}

type publisherStub struct {
	mu       sync.Mutex
	err      error
	channels []string
}

func (p *publisherStub) Publish(_ context.Context, channel string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.channels = append(p.channels, channel)
	return nil
}

func (p *publisherStub) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.channels...)
}

type chatFixture struct {
	svc       domain.Service
	db        *gorm.DB
	node      *snowflake.Node
	publisher *publisherStub

	consumerID    snowflake.ID
	contributorID snowflake.ID
	channelID     snowflake.ID
}

func setupChat(t *testing.T) *chatFixture {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migration.AutoMigrate(db))

	pub := &publisherStub{}
	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Repo:       repository.Provide(),
		Moderation: moderationPass{},
		Publisher:  pub,
	})

	f := &chatFixture{
		svc:           svc,
		db:            db,
		node:          node,
		publisher:     pub,
		consumerID:    node.Generate(),
		contributorID: node.Generate(),
	}
	f.channelID = f.channel(t, f.consumerID, f.contributorID)
	return f
}

func (f *chatFixture) channel(t *testing.T, consumerID, contributorID snowflake.ID) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	orderID := f.node.Generate()
	require.NoError(t, f.db.Create(&domain.ChatChannel{
		ID:            id,
		OrderID:       orderID,
		ExternalID:    fmt.Sprintf("order_%d", orderID),
		ConsumerID:    consumerID,
		ContributorID: contributorID,
	}).Error)
	return id
}

func (f *chatFixture) consumerCtx() context.Context {
	return usercontext.WithUserID(context.Background(), f.consumerID)
}

func (f *chatFixture) contributorCtx() context.Context {
	return usercontext.WithUserID(context.Background(), f.contributorID)
}

func TestPublishFansOut(t *testing.T) {
	f := setupChat(t)

	msg, err := f.svc.Publish(f.consumerCtx(), &domain.PublishRequest{ChannelID: f.channelID, Text: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, f.consumerID, msg.SenderID)

	published := f.publisher.Published()
	require.Len(t, published, 1)
	assert.Contains(t, published[0], "order_")

	messages, err := f.svc.Messages(f.contributorCtx(), f.channelID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestPublishRequiresContent(t *testing.T) {
	f := setupChat(t)

	_, err := f.svc.Publish(f.consumerCtx(), &domain.PublishRequest{ChannelID: f.channelID, Text: "   "})
	require.ErrorIs(t, err, domain.ErrEmptyMessage)

	// A file attachment alone is enough.
	msg, err := f.svc.Publish(f.consumerCtx(), &domain.PublishRequest{
		ChannelID: f.channelID,
		FileURL:   "https://cdn.example.com/take.mp4",
		FileType:  "video",
	})
	require.NoError(t, err)
	assert.Empty(t, msg.Text)
	assert.NotEmpty(t, msg.FileURL)
}

func TestPublishRejectsNonParticipant(t *testing.T) {
	f := setupChat(t)
	stranger := usercontext.WithUserID(context.Background(), f.node.Generate())

	_, err := f.svc.Publish(stranger, &domain.PublishRequest{ChannelID: f.channelID, Text: "hi"})
	require.ErrorIs(t, err, domain.ErrNotParticipant)

	_, err = f.svc.Messages(stranger, f.channelID)
	require.ErrorIs(t, err, domain.ErrNotParticipant)

	_, err = f.svc.Publish(context.Background(), &domain.PublishRequest{ChannelID: f.channelID, Text: "hi"})
	require.ErrorIs(t, err, userdomain.ErrInvalidUser)

	_, err = f.svc.Publish(f.consumerCtx(), &domain.PublishRequest{ChannelID: f.node.Generate(), Text: "hi"})
	require.ErrorIs(t, err, domain.ErrChannelNotFound)
}

func TestPublishStoresMessageWhenFanOutFails(t *testing.T) {
	f := setupChat(t)
	f.publisher.err = errors.New("pubnub unreachable")

	msg, err := f.svc.Publish(f.consumerCtx(), &domain.PublishRequest{ChannelID: f.channelID, Text: "hi"})
	require.Error(t, err)
	require.NotNil(t, msg, "stored message is returned alongside the fan-out error")

	messages, err := f.svc.Messages(f.consumerCtx(), f.channelID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestUnreadCounts(t *testing.T) {
	f := setupChat(t)
	otherSeller := f.node.Generate()
	secondChannel := f.channel(t, f.consumerID, otherSeller)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Publish(f.contributorCtx(), &domain.PublishRequest{ChannelID: f.channelID, Text: fmt.Sprintf("take %d", i+1)})
		require.NoError(t, err)
	}
	_, err := f.svc.Publish(f.consumerCtx(), &domain.PublishRequest{ChannelID: f.channelID, Text: "thanks"})
	require.NoError(t, err)
	_, err = f.svc.Publish(usercontext.WithUserID(context.Background(), otherSeller), &domain.PublishRequest{ChannelID: secondChannel, Text: "update"})
	require.NoError(t, err)

	// Own messages do not count as unread; counts span both channels.
	chats, err := f.svc.MyChats(f.consumerCtx())
	require.NoError(t, err)
	require.Len(t, chats.Chats, 2)
	assert.Equal(t, int64(4), chats.TotalUnread)

	require.NoError(t, f.svc.MarkRead(f.consumerCtx(), f.channelID))

	chats, err = f.svc.MyChats(f.consumerCtx())
	require.NoError(t, err)
	assert.Equal(t, int64(1), chats.TotalUnread, "only the first channel was read")

	// The contributor still sees the consumer's reply as unread.
	chats, err = f.svc.MyChats(f.contributorCtx())
	require.NoError(t, err)
	require.Len(t, chats.Chats, 1)
	assert.Equal(t, int64(1), chats.TotalUnread)
}
