package service

import (
	"context"
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

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/feedback/domain"
	"github.com/blessnhq/blessn/internal/feedback/repository"
	"github.com/blessnhq/blessn/internal/migration"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	notificationdomain "github.com/blessnhq/blessn/internal/notification/domain"
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

type notifierStub struct {
	mu     sync.Mutex
	titles []string
	users  []snowflake.ID
}

func (n *notifierStub) Notify(_ context.Context, userID snowflake.ID, title, _ string, _ map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
	n.users = append(n.users, userID)
}

func (n *notifierStub) List(context.Context) ([]notificationdomain.Notification, error) {
	return nil, nil
}

func (n *notifierStub) MarkSeen(context.Context, snowflake.ID) error { return nil }

func (n *notifierStub) MarkAllSeen(context.Context) error { return nil }

type feedbackFixture struct {
	svc      domain.Service
	db       *gorm.DB
	node     *snowflake.Node
	notifier *notifierStub
}

func setupFeedback(t *testing.T) *feedbackFixture {
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

	notifier := &notifierStub{}
	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Repo:       repository.Provide(),
		Moderation: moderationPass{},
		Notifier:   notifier,
	})

	return &feedbackFixture{svc: svc, db: db, node: node, notifier: notifier}
}

func TestSubmitAndMine(t *testing.T) {
	f := setupFeedback(t)
	userID := f.node.Generate()
	ctx := usercontext.WithUserID(context.Background(), userID)

	fb, err := f.svc.Submit(ctx, &domain.SubmitRequest{Email: " me@example.com ", Message: "  love the app  "})
	require.NoError(t, err)
	assert.Equal(t, "love the app", fb.Message)
	assert.Equal(t, "me@example.com", fb.Email)
	assert.False(t, fb.Responded)

	mine, err := f.svc.Mine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	other := usercontext.WithUserID(context.Background(), f.node.Generate())
	mine, err = f.svc.Mine(other)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestSubmitValidation(t *testing.T) {
	f := setupFeedback(t)
	ctx := usercontext.WithUserID(context.Background(), f.node.Generate())

	_, err := f.svc.Submit(ctx, &domain.SubmitRequest{Message: "   "})
	require.ErrorIs(t, err, domain.ErrEmptyMessage)

	_, err = f.svc.Submit(context.Background(), &domain.SubmitRequest{Message: "hi"})
	require.ErrorIs(t, err, userdomain.ErrInvalidUser)
}

func TestRespondNotifiesAuthor(t *testing.T) {
	f := setupFeedback(t)
	userID := f.node.Generate()
	ctx := usercontext.WithUserID(context.Background(), userID)

	fb, err := f.svc.Submit(ctx, &domain.SubmitRequest{Message: "the feed is slow"})
	require.NoError(t, err)

	responded, err := f.svc.Respond(ctx, fb.ID, "  thanks, fixed in the next release  ")
	require.NoError(t, err)
	assert.True(t, responded.Responded)
	assert.True(t, responded.AdminRead)
	assert.Equal(t, "thanks, fixed in the next release", responded.Response)

	require.Len(t, f.notifier.users, 1)
	assert.Equal(t, userID, f.notifier.users[0])

	_, err = f.svc.Respond(ctx, f.node.Generate(), "nope")
	require.ErrorIs(t, err, domain.ErrFeedbackNotFound)
}

func TestReadFlags(t *testing.T) {
	f := setupFeedback(t)
	ctx := usercontext.WithUserID(context.Background(), f.node.Generate())

	first, err := f.svc.Submit(ctx, &domain.SubmitRequest{Message: "one"})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, &domain.SubmitRequest{Message: "two"})
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkRead(ctx, first.ID))

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	unread := 0
	for _, fb := range all {
		if !fb.AdminRead {
			unread++
		}
	}
	assert.Equal(t, 1, unread)

	require.NoError(t, f.svc.MarkAllRead(ctx))

	all, err = f.svc.ListAll(ctx)
	require.NoError(t, err)
	for _, fb := range all {
		assert.True(t, fb.AdminRead)
	}
}

func TestDeleteFeedback(t *testing.T) {
	f := setupFeedback(t)
	ctx := usercontext.WithUserID(context.Background(), f.node.Generate())

	fb, err := f.svc.Submit(ctx, &domain.SubmitRequest{Message: "remove me"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, fb.ID))
	require.ErrorIs(t, f.svc.Delete(ctx, fb.ID), domain.ErrFeedbackNotFound)
}
