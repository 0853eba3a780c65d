package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/migration"
	"github.com/blessnhq/blessn/internal/notification/domain"
	"github.com/blessnhq/blessn/internal/notification/repository"
	"github.com/blessnhq/blessn/internal/providers/push"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	userrepo "github.com/blessnhq/blessn/internal/user/repository"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type pushDelivery struct {
	token        string
	notification push.Notification
}

type pushStub struct {
	sent chan pushDelivery
}

func newPushStub() *pushStub {
	return &pushStub{sent: make(chan pushDelivery, 8)}
}

func (p *pushStub) Send(_ context.Context, registrationID string, notification push.Notification) error {
	p.sent <- pushDelivery{token: registrationID, notification: notification}
	return nil
}

func (p *pushStub) waitForSend(t *testing.T) pushDelivery {
	t.Helper()
	select {
	case d := <-p.sent:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for push delivery")
		return pushDelivery{}
	}
}

func (p *pushStub) assertNoSend(t *testing.T) {
	t.Helper()
	select {
	case d := <-p.sent:
		t.Fatalf("unexpected push delivery to %s", d.token)
	case <-time.After(50 * time.Millisecond):
	}
}

type notificationFixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
	push *pushStub
}

func setupNotification(t *testing.T) *notificationFixture {
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

	stub := newPushStub()
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Repo:     repository.Provide(),
		UserRepo: userrepo.Provide(),
		Push:     stub,
	})

	return &notificationFixture{svc: svc, db: db, node: node, push: stub}
}

func (f *notificationFixture) user(t *testing.T, mutate func(*userdomain.User)) snowflake.ID {
	t.Helper()
	user := &userdomain.User{
		ID:                 f.node.Generate(),
		Email:              fmt.Sprintf("user-%d@example.com", f.node.Generate()),
		Active:             true,
		MasterNotification: true,
		InAppNotification:  true,
		PushNotification:   true,
		RegistrationID:     "device-token",
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, f.db.Create(user).Error)
	return user.ID
}

func TestNotifyStoresAndPushes(t *testing.T) {
	f := setupNotification(t)
	userID := f.user(t, nil)
	ctx := usercontext.WithUserID(context.Background(), userID)

	f.svc.Notify(context.Background(), userID, "Order delivered", "Your video is ready", map[string]string{"order_id": "42"})

	delivered := f.push.waitForSend(t)
	assert.Equal(t, "device-token", delivered.token)
	assert.Equal(t, "Order delivered", delivered.notification.Title)
	assert.Equal(t, "42", delivered.notification.Data["order_id"])

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Order delivered", list[0].Title)
	assert.False(t, list[0].Seen)
}

func TestNotifyHonorsMasterSwitch(t *testing.T) {
	f := setupNotification(t)
	userID := f.user(t, func(u *userdomain.User) { u.MasterNotification = false })

	f.svc.Notify(context.Background(), userID, "ignored", "", nil)
	f.push.assertNoSend(t)

	list, err := f.svc.List(usercontext.WithUserID(context.Background(), userID))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifySkipsPushWithoutToken(t *testing.T) {
	f := setupNotification(t)
	userID := f.user(t, func(u *userdomain.User) { u.RegistrationID = "" })

	f.svc.Notify(context.Background(), userID, "in-app only", "", nil)
	f.push.assertNoSend(t)

	list, err := f.svc.List(usercontext.WithUserID(context.Background(), userID))
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestNotifySkipsInAppWhenDisabled(t *testing.T) {
	f := setupNotification(t)
	userID := f.user(t, func(u *userdomain.User) { u.InAppNotification = false })

	f.svc.Notify(context.Background(), userID, "push only", "", nil)
	f.push.waitForSend(t)

	list, err := f.svc.List(usercontext.WithUserID(context.Background(), userID))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifyUnknownUserIsNoop(t *testing.T) {
	f := setupNotification(t)

	f.svc.Notify(context.Background(), f.node.Generate(), "nobody home", "", nil)
	f.push.assertNoSend(t)
}

func TestMarkSeen(t *testing.T) {
	f := setupNotification(t)
	userID := f.user(t, func(u *userdomain.User) { u.RegistrationID = "" })
	ctx := usercontext.WithUserID(context.Background(), userID)

	f.svc.Notify(context.Background(), userID, "first", "", nil)
	f.svc.Notify(context.Background(), userID, "second", "", nil)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, f.svc.MarkSeen(ctx, list[0].ID))

	// Someone else's notification cannot be marked.
	otherID := f.user(t, nil)
	other := usercontext.WithUserID(context.Background(), otherID)
	require.ErrorIs(t, f.svc.MarkSeen(other, list[1].ID), domain.ErrNotificationNotFound)

	require.NoError(t, f.svc.MarkAllSeen(ctx))

	list, err = f.svc.List(ctx)
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.Seen)
	}
}
