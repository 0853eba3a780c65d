package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	postdomain "github.com/blessnhq/blessn/internal/post/domain"
	"github.com/blessnhq/blessn/pkg/db/pagination"
)

// RankedPost is one feed entry with the signals that produced its score.
type RankedPost struct {
	Post       postdomain.Post `json:"post"`
	Score      float64         `json:"score"`
	Likes      int64           `json:"likes"`
	Follows    int64           `json:"follows"`
	AvgRating  float64         `json:"avg_rating"`
	IsFollowed bool            `json:"is_followed"`
}

type FeedRequest struct {
	Pagination pagination.Pagination
}

type FeedResponse struct {
	Posts    []RankedPost        `json:"posts"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// Feed returns the global feed ranked by engagement score, descending,
	// cursor-paginated. Anonymous viewers get the unauthenticated formula.
	Feed(ctx context.Context, req *FeedRequest) (*FeedResponse, error)
}

// Repository aggregates the ranking signals in bulk queries.
type Repository interface {
	FindCandidatePosts(ctx context.Context, db *gorm.DB) ([]postdomain.Post, error)
	CountLikesByPost(ctx context.Context, db *gorm.DB, postIDs []snowflake.ID) (map[snowflake.ID]int64, error)
	CountFollowersByContributor(ctx context.Context, db *gorm.DB, contributorIDs []snowflake.ID) (map[snowflake.ID]int64, error)
	AvgRatingByContributor(ctx context.Context, db *gorm.DB, contributorIDs []snowflake.ID) (map[snowflake.ID]float64, error)
	FollowedSet(ctx context.Context, db *gorm.DB, viewerID snowflake.ID, contributorIDs []snowflake.ID) (map[snowflake.ID]bool, error)

	// ContributorUserIDs maps candidate authors to their user identity so
	// blocked users' content can be filtered out.
	ContributorUserIDs(ctx context.Context, db *gorm.DB, contributorIDs []snowflake.ID) (map[snowflake.ID]snowflake.ID, error)
	BlockedUserIDs(ctx context.Context, db *gorm.DB, viewerID snowflake.ID) ([]snowflake.ID, error)
}
