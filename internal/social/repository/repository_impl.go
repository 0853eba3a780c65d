package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/social/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertFollow(ctx context.Context, db *gorm.DB, follow *domain.Follow) error {
	return db.WithContext(ctx).Create(follow).Error
}

func (r *repo) DeleteFollow(ctx context.Context, db *gorm.DB, followerID, contributorID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("follower_id = ? AND contributor_id = ?", followerID, contributorID).
		Delete(&domain.Follow{}).Error
}

func (r *repo) FindFollow(ctx context.Context, db *gorm.DB, followerID, contributorID snowflake.ID) (*domain.Follow, error) {
	var follow domain.Follow
	err := db.WithContext(ctx).
		First(&follow, "follower_id = ? AND contributor_id = ?", followerID, contributorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

func (r *repo) FindFollowsByUser(ctx context.Context, db *gorm.DB, followerID snowflake.ID) ([]domain.Follow, error) {
	var follows []domain.Follow
	err := db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Order("created_at DESC").
		Find(&follows).Error
	return follows, err
}

func (r *repo) CountFollowers(ctx context.Context, db *gorm.DB, contributorID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("contributor_id = ?", contributorID).
		Count(&count).Error
	return count, err
}

func (r *repo) FindFollowedSet(ctx context.Context, db *gorm.DB, followerID snowflake.ID, contributorIDs []snowflake.ID) (map[snowflake.ID]bool, error) {
	followed := make(map[snowflake.ID]bool, len(contributorIDs))
	if len(contributorIDs) == 0 {
		return followed, nil
	}

	var follows []domain.Follow
	err := db.WithContext(ctx).
		Where("follower_id = ? AND contributor_id IN ?", followerID, contributorIDs).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}

	for _, follow := range follows {
		followed[follow.ContributorID] = true
	}
	return followed, nil
}

func (r *repo) InsertBlock(ctx context.Context, db *gorm.DB, block *domain.Block) error {
	return db.WithContext(ctx).Create(block).Error
}

func (r *repo) DeleteBlock(ctx context.Context, db *gorm.DB, blockerID, blockedID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&domain.Block{}).Error
}

func (r *repo) FindBlocksByUser(ctx context.Context, db *gorm.DB, blockerID snowflake.ID) ([]domain.Block, error) {
	var blocks []domain.Block
	err := db.WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&blocks).Error
	return blocks, err
}

func (r *repo) FindBlockedUserIDs(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]snowflake.ID, error) {
	var blocks []domain.Block
	err := db.WithContext(ctx).
		Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[snowflake.ID]bool, len(blocks))
	ids := make([]snowflake.ID, 0, len(blocks))
	for _, block := range blocks {
		other := block.BlockedID
		if other == userID {
			other = block.BlockerID
		}
		if !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}
	return ids, nil
}
