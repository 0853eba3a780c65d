package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	"github.com/blessnhq/blessn/internal/feed/domain"
	orderdomain "github.com/blessnhq/blessn/internal/order/domain"
	postdomain "github.com/blessnhq/blessn/internal/post/domain"
	socialdomain "github.com/blessnhq/blessn/internal/social/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

type refCount struct {
	RefID snowflake.ID `gorm:"column:ref_id"`
	Total int64        `gorm:"column:total"`
}

type refAvg struct {
	RefID snowflake.ID `gorm:"column:ref_id"`
	Avg   float64      `gorm:"column:avg_rating"`
}

func (r *repo) FindCandidatePosts(ctx context.Context, db *gorm.DB) ([]postdomain.Post, error) {
	var posts []postdomain.Post
	err := db.WithContext(ctx).Preload("Files").Find(&posts).Error
	return posts, err
}

func (r *repo) CountLikesByPost(ctx context.Context, db *gorm.DB, postIDs []snowflake.ID) (map[snowflake.ID]int64, error) {
	counts := make(map[snowflake.ID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []refCount
	err := db.WithContext(ctx).
		Model(&postdomain.Like{}).
		Select("post_id AS ref_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.RefID] = row.Total
	}
	return counts, nil
}

func (r *repo) CountFollowersByContributor(ctx context.Context, db *gorm.DB, contributorIDs []snowflake.ID) (map[snowflake.ID]int64, error) {
	counts := make(map[snowflake.ID]int64, len(contributorIDs))
	if len(contributorIDs) == 0 {
		return counts, nil
	}

	var rows []refCount
	err := db.WithContext(ctx).
		Model(&socialdomain.Follow{}).
		Select("contributor_id AS ref_id, COUNT(*) AS total").
		Where("contributor_id IN ?", contributorIDs).
		Group("contributor_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.RefID] = row.Total
	}
	return counts, nil
}

func (r *repo) AvgRatingByContributor(ctx context.Context, db *gorm.DB, contributorIDs []snowflake.ID) (map[snowflake.ID]float64, error) {
	ratings := make(map[snowflake.ID]float64, len(contributorIDs))
	if len(contributorIDs) == 0 {
		return ratings, nil
	}

	var rows []refAvg
	err := db.WithContext(ctx).
		Model(&orderdomain.Review{}).
		Select("contributor_id AS ref_id, AVG(rating) AS avg_rating").
		Where("contributor_id IN ?", contributorIDs).
		Group("contributor_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ratings[row.RefID] = row.Avg
	}
	return ratings, nil
}

func (r *repo) FollowedSet(ctx context.Context, db *gorm.DB, viewerID snowflake.ID, contributorIDs []snowflake.ID) (map[snowflake.ID]bool, error) {
	followed := make(map[snowflake.ID]bool, len(contributorIDs))
	if len(contributorIDs) == 0 {
		return followed, nil
	}

	var follows []socialdomain.Follow
	err := db.WithContext(ctx).
		Where("follower_id = ? AND contributor_id IN ?", viewerID, contributorIDs).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	for _, follow := range follows {
		followed[follow.ContributorID] = true
	}
	return followed, nil
}

func (r *repo) ContributorUserIDs(ctx context.Context, db *gorm.DB, contributorIDs []snowflake.ID) (map[snowflake.ID]snowflake.ID, error) {
	users := make(map[snowflake.ID]snowflake.ID, len(contributorIDs))
	if len(contributorIDs) == 0 {
		return users, nil
	}

	var contributors []contributordomain.Contributor
	err := db.WithContext(ctx).
		Select("id", "user_id").
		Where("id IN ?", contributorIDs).
		Find(&contributors).Error
	if err != nil {
		return nil, err
	}
	for _, contributor := range contributors {
		users[contributor.ID] = contributor.UserID
	}
	return users, nil
}

func (r *repo) BlockedUserIDs(ctx context.Context, db *gorm.DB, viewerID snowflake.ID) ([]snowflake.ID, error) {
	var blocks []socialdomain.Block
	err := db.WithContext(ctx).
		Where("blocker_id = ? OR blocked_id = ?", viewerID, viewerID).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[snowflake.ID]bool, len(blocks))
	ids := make([]snowflake.ID, 0, len(blocks))
	for _, block := range blocks {
		other := block.BlockedID
		if other == viewerID {
			other = block.BlockerID
		}
		if !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}
	return ids, nil
}
