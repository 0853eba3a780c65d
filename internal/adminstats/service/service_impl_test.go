package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/adminstats/domain"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	"github.com/blessnhq/blessn/internal/migration"
	orderdomain "github.com/blessnhq/blessn/internal/order/domain"
	paymentdomain "github.com/blessnhq/blessn/internal/payment/domain"
	postdomain "github.com/blessnhq/blessn/internal/post/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
)

var (
	june = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	july = time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
)

type statsFixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func setupStats(t *testing.T) *statsFixture {
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

	svc := New(Params{DB: db, Log: zap.NewNop()})
	return &statsFixture{svc: svc, db: db, node: node}
}

func (f *statsFixture) user(t *testing.T, createdAt time.Time) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Create(&userdomain.User{
		ID:        id,
		Email:     fmt.Sprintf("user-%d@example.com", id),
		Active:    true,
		CreatedAt: createdAt,
	}).Error)
	return id
}

func (f *statsFixture) order(t *testing.T, status orderdomain.Status, createdAt time.Time) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Create(&orderdomain.Order{
		ID:         id,
		Turnaround: contributordomain.TurnaroundNormal,
		VideoFee:   decimal.NewFromInt(40),
		BookingFee: decimal.NewFromInt(10),
		Status:     status,
		CreatedAt:  createdAt,
	}).Error)
	return id
}

func (f *statsFixture) payment(t *testing.T, amount int64, refunded bool, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.db.Create(&paymentdomain.Payment{
		ID:         f.node.Generate(),
		OrderID:    f.node.Generate(),
		ConsumerID: f.node.Generate(),
		Amount:     decimal.NewFromInt(amount),
		Refunded:   refunded,
		CreatedAt:  createdAt,
	}).Error)
}

func TestRegistrations(t *testing.T) {
	f := setupStats(t)
	ctx := context.Background()

	earlyUser := f.user(t, june)
	f.user(t, july)
	lateUser := f.user(t, july)

	require.NoError(t, f.db.Create(&contributordomain.Contributor{ID: f.node.Generate(), UserID: earlyUser, CreatedAt: june}).Error)
	require.NoError(t, f.db.Create(&contributordomain.Contributor{ID: f.node.Generate(), UserID: lateUser, CreatedAt: july}).Error)

	stats, err := f.svc.Registrations(ctx, domain.Period{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.NewUsers)
	assert.Equal(t, int64(2), stats.Contributors)

	julyOnly := domain.Period{From: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}
	stats, err = f.svc.Registrations(ctx, julyOnly)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers, "total ignores the period")
	assert.Equal(t, int64(2), stats.NewUsers)
	assert.Equal(t, int64(1), stats.NewContributors)

	juneOnly := domain.Period{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	stats, err = f.svc.Registrations(ctx, juneOnly)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.NewUsers)
	assert.Equal(t, int64(1), stats.NewContributors)
}

func TestActivity(t *testing.T) {
	f := setupStats(t)
	ctx := context.Background()

	f.order(t, orderdomain.StatusInProgress, june)
	f.order(t, orderdomain.StatusDelivered, june)
	f.order(t, orderdomain.StatusDelivered, july)
	f.order(t, orderdomain.StatusRefunded, july)

	require.NoError(t, f.db.Create(&postdomain.Post{ID: f.node.Generate(), ContributorID: f.node.Generate(), Title: "p", CreatedAt: july}).Error)

	f.payment(t, 50, false, june)
	f.payment(t, 75, false, july)
	f.payment(t, 120, true, july)

	stats, err := f.svc.Activity(ctx, domain.Period{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.OrdersPlaced)
	assert.Equal(t, int64(2), stats.OrdersDelivered)
	assert.Equal(t, int64(1), stats.OrdersRefunded)
	assert.Equal(t, int64(1), stats.PostsCreated)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(125)), "refunded payments do not count, got %s", stats.Revenue)

	julyOnly := domain.Period{From: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}
	stats, err = f.svc.Activity(ctx, julyOnly)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.OrdersPlaced)
	assert.Equal(t, int64(1), stats.OrdersDelivered)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(75)), "got %s", stats.Revenue)
}
