package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertFollow(ctx context.Context, db *gorm.DB, follow *Follow) error
	DeleteFollow(ctx context.Context, db *gorm.DB, followerID, contributorID snowflake.ID) error
	FindFollow(ctx context.Context, db *gorm.DB, followerID, contributorID snowflake.ID) (*Follow, error)
	FindFollowsByUser(ctx context.Context, db *gorm.DB, followerID snowflake.ID) ([]Follow, error)
	CountFollowers(ctx context.Context, db *gorm.DB, contributorID snowflake.ID) (int64, error)

	// FindFollowedSet returns which of the given contributors the user
	// follows, keyed by contributor id.
	FindFollowedSet(ctx context.Context, db *gorm.DB, followerID snowflake.ID, contributorIDs []snowflake.ID) (map[snowflake.ID]bool, error)

	InsertBlock(ctx context.Context, db *gorm.DB, block *Block) error
	DeleteBlock(ctx context.Context, db *gorm.DB, blockerID, blockedID snowflake.ID) error
	FindBlocksByUser(ctx context.Context, db *gorm.DB, blockerID snowflake.ID) ([]Block, error)

	// FindBlockedUserIDs returns users blocked by or blocking the given user.
	FindBlockedUserIDs(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]snowflake.ID, error)
}
