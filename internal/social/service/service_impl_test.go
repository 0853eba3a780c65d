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
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	contributorrepo "github.com/blessnhq/blessn/internal/contributor/repository"
	"github.com/blessnhq/blessn/internal/migration"
	"github.com/blessnhq/blessn/internal/social/domain"
	"github.com/blessnhq/blessn/internal/social/repository"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	userrepo "github.com/blessnhq/blessn/internal/user/repository"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type socialFixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func setupSocial(t *testing.T) *socialFixture {
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
		DB:              db,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Repo:            repository.Provide(),
		ContributorRepo: contributorrepo.Provide(),
		UserRepo:        userrepo.Provide(),
	})

	return &socialFixture{svc: svc, db: db, node: node}
}

func (f *socialFixture) user(t *testing.T) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Create(&userdomain.User{
		ID:     id,
		Email:  fmt.Sprintf("user-%d@example.com", id),
		Active: true,
	}).Error)
	return id
}

func (f *socialFixture) contributor(t *testing.T) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Create(&contributordomain.Contributor{ID: id, UserID: f.user(t)}).Error)
	return id
}

func userCtx(id snowflake.ID) context.Context {
	return usercontext.WithUserID(context.Background(), id)
}

func TestFollowAndUnfollow(t *testing.T) {
	f := setupSocial(t)
	follower := f.user(t)
	contributorID := f.contributor(t)
	ctx := userCtx(follower)

	follow, err := f.svc.Follow(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, follower, follow.FollowerID)
	assert.Equal(t, contributorID, follow.ContributorID)

	follows, err := f.svc.MyFollows(ctx)
	require.NoError(t, err)
	require.Len(t, follows, 1)

	count, err := f.svc.FollowerCount(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, f.svc.Unfollow(ctx, contributorID))

	count, err = f.svc.FollowerCount(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFollowDuplicateRejected(t *testing.T) {
	f := setupSocial(t)
	ctx := userCtx(f.user(t))
	contributorID := f.contributor(t)

	_, err := f.svc.Follow(ctx, contributorID)
	require.NoError(t, err)

	_, err = f.svc.Follow(ctx, contributorID)
	require.ErrorIs(t, err, domain.ErrAlreadyFollowing)
}

func TestFollowUnknownContributor(t *testing.T) {
	f := setupSocial(t)
	ctx := userCtx(f.user(t))

	_, err := f.svc.Follow(ctx, f.node.Generate())
	require.ErrorIs(t, err, contributordomain.ErrContributorNotFound)
}

func TestUnfollowNotFollowing(t *testing.T) {
	f := setupSocial(t)
	ctx := userCtx(f.user(t))
	contributorID := f.contributor(t)

	require.ErrorIs(t, f.svc.Unfollow(ctx, contributorID), domain.ErrNotFollowing)
}

func TestFollowRequiresUser(t *testing.T) {
	f := setupSocial(t)
	contributorID := f.contributor(t)

	_, err := f.svc.Follow(context.Background(), contributorID)
	require.ErrorIs(t, err, userdomain.ErrInvalidUser)
}

func TestBlockAndUnblock(t *testing.T) {
	f := setupSocial(t)
	blocker := f.user(t)
	target := f.user(t)
	ctx := userCtx(blocker)

	block, err := f.svc.Block(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, blocker, block.BlockerID)
	assert.Equal(t, target, block.BlockedID)

	blocks, err := f.svc.MyBlocks(ctx)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	require.NoError(t, f.svc.Unblock(ctx, target))

	blocks, err = f.svc.MyBlocks(ctx)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	require.ErrorIs(t, f.svc.Unblock(ctx, target), domain.ErrNotBlocked)
}

func TestBlockSelfRejected(t *testing.T) {
	f := setupSocial(t)
	userID := f.user(t)

	_, err := f.svc.Block(userCtx(userID), userID)
	require.ErrorIs(t, err, domain.ErrSelfBlock)
}

func TestBlockDuplicateRejected(t *testing.T) {
	f := setupSocial(t)
	ctx := userCtx(f.user(t))
	target := f.user(t)

	_, err := f.svc.Block(ctx, target)
	require.NoError(t, err)

	_, err = f.svc.Block(ctx, target)
	require.ErrorIs(t, err, domain.ErrAlreadyBlocked)
}

func TestBlockUnknownUser(t *testing.T) {
	f := setupSocial(t)
	ctx := userCtx(f.user(t))

	_, err := f.svc.Block(ctx, f.node.Generate())
	require.ErrorIs(t, err, userdomain.ErrUserNotFound)
}
