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

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/contributor/domain"
	"github.com/blessnhq/blessn/internal/contributor/repository"
	"github.com/blessnhq/blessn/internal/migration"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	userrepo "github.com/blessnhq/blessn/internal/user/repository"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type contributorFixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func setupContributor(t *testing.T) *contributorFixture {
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

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Repo:     repository.Provide(),
		UserRepo: userrepo.Provide(),
	})

	return &contributorFixture{svc: svc, db: db, node: node}
}

func (f *contributorFixture) user(t *testing.T) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Create(&userdomain.User{
		ID:     id,
		Email:  fmt.Sprintf("user-%d@example.com", id),
		Active: true,
	}).Error)
	return id
}

func (f *contributorFixture) apply(t *testing.T, userID snowflake.ID) *domain.Contributor {
	t.Helper()
	contributor, err := f.svc.Apply(usercontext.WithUserID(context.Background(), userID), &domain.ApplyRequest{
		Phone: "+1 555 0100",
		City:  "Austin",
		State: "TX",
	})
	require.NoError(t, err)
	return contributor
}

func TestApplyMarksUser(t *testing.T) {
	f := setupContributor(t)
	userID := f.user(t)

	contributor := f.apply(t, userID)
	assert.Equal(t, userID, contributor.UserID)
	assert.Equal(t, "Austin", contributor.City)

	var user userdomain.User
	require.NoError(t, f.db.First(&user, "id = ?", userID).Error)
	assert.True(t, user.AppliedContributor)
	assert.False(t, user.ApprovedContributor)
}

func TestApplyTwiceRejected(t *testing.T) {
	f := setupContributor(t)
	userID := f.user(t)
	f.apply(t, userID)

	_, err := f.svc.Apply(usercontext.WithUserID(context.Background(), userID), &domain.ApplyRequest{})
	require.ErrorIs(t, err, domain.ErrAlreadyApplied)
}

func TestApplyRequiresKnownUser(t *testing.T) {
	f := setupContributor(t)

	_, err := f.svc.Apply(context.Background(), &domain.ApplyRequest{})
	require.ErrorIs(t, err, userdomain.ErrInvalidUser)

	ctx := usercontext.WithUserID(context.Background(), f.node.Generate())
	_, err = f.svc.Apply(ctx, &domain.ApplyRequest{})
	require.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestApprove(t *testing.T) {
	f := setupContributor(t)
	userID := f.user(t)
	f.apply(t, userID)
	ctx := context.Background()

	require.NoError(t, f.svc.Approve(ctx, userID))

	var user userdomain.User
	require.NoError(t, f.db.First(&user, "id = ?", userID).Error)
	assert.True(t, user.ApprovedContributor)

	require.ErrorIs(t, f.svc.Approve(ctx, f.node.Generate()), userdomain.ErrUserNotFound)

	// A user without an application cannot be approved.
	plain := f.user(t)
	require.ErrorIs(t, f.svc.Approve(ctx, plain), domain.ErrContributorNotFound)
}

func TestUpdateProfilePrices(t *testing.T) {
	f := setupContributor(t)
	userID := f.user(t)
	f.apply(t, userID)
	ctx := usercontext.WithUserID(context.Background(), userID)

	normal := decimal.NewFromInt(40)
	fast := decimal.NewFromInt(60)
	contributor, err := f.svc.UpdateProfile(ctx, &domain.UpdateProfileRequest{
		NormalDeliveryPrice: &normal,
		FastDeliveryPrice:   &fast,
	})
	require.NoError(t, err)
	assert.True(t, contributor.NormalDeliveryPrice.Equal(normal))
	assert.True(t, contributor.FastDeliveryPrice.Equal(fast))
	assert.True(t, contributor.SameDayDeliveryPrice.IsZero(), "untouched price stays")

	negative := decimal.NewFromInt(-1)
	_, err = f.svc.UpdateProfile(ctx, &domain.UpdateProfileRequest{SameDayDeliveryPrice: &negative})
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	city := "  Dallas "
	contributor, err = f.svc.UpdateProfile(ctx, &domain.UpdateProfileRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Dallas", contributor.City)
}

func TestGallery(t *testing.T) {
	f := setupContributor(t)
	userID := f.user(t)
	contributor := f.apply(t, userID)
	ctx := usercontext.WithUserID(context.Background(), userID)

	_, err := f.svc.AddPhotoVideo(ctx, &domain.AddPhotoVideoRequest{FileURL: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidContributor)

	item, err := f.svc.AddPhotoVideo(ctx, &domain.AddPhotoVideoRequest{
		FileURL: "https://cdn.example.com/reel.mp4",
		Title:   "Highlight reel",
	})
	require.NoError(t, err)
	assert.Equal(t, contributor.ID, item.ContributorID)

	items, err := f.svc.ListPhotoVideos(context.Background(), contributor.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, f.svc.RemovePhotoVideo(ctx, item.ID))

	items, err = f.svc.ListPhotoVideos(context.Background(), contributor.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetByUserID(t *testing.T) {
	f := setupContributor(t)
	userID := f.user(t)
	contributor := f.apply(t, userID)

	got, err := f.svc.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, contributor.ID, got.ID)

	_, err = f.svc.Get(context.Background(), f.node.Generate())
	require.ErrorIs(t, err, domain.ErrContributorNotFound)
}
