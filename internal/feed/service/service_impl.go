package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/feed/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
	"github.com/blessnhq/blessn/pkg/db/pagination"
)

// Scoring weights. Viewer-specific social proof dominates for signed-in
// users; anonymous scoring leans on the author's reputation instead.
const (
	authFollowedWeight = 1.35
	authLikesWeight    = 0.2
	authFollowsWeight  = 0.2
	authRatingWeight   = 0.25

	anonLikesWeight   = 0.3
	anonFollowsWeight = 0.3
	anonRatingWeight  = 0.4
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("feed.service"),
		repo: p.Repo,
	}
}

func (s *Service) Feed(ctx context.Context, req *domain.FeedRequest) (*domain.FeedResponse, error) {
	viewerID, authenticated := usercontext.UserIDFromContext(ctx)
	if viewerID == 0 {
		authenticated = false
	}

	posts, err := s.repo.FindCandidatePosts(ctx, s.db)
	if err != nil {
		return nil, err
	}

	postIDs := make([]snowflake.ID, 0, len(posts))
	contributorSet := make(map[snowflake.ID]bool)
	contributorIDs := make([]snowflake.ID, 0)
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
		if !contributorSet[post.ContributorID] {
			contributorSet[post.ContributorID] = true
			contributorIDs = append(contributorIDs, post.ContributorID)
		}
	}

	likes, err := s.repo.CountLikesByPost(ctx, s.db, postIDs)
	if err != nil {
		return nil, err
	}
	followers, err := s.repo.CountFollowersByContributor(ctx, s.db, contributorIDs)
	if err != nil {
		return nil, err
	}
	ratings, err := s.repo.AvgRatingByContributor(ctx, s.db, contributorIDs)
	if err != nil {
		return nil, err
	}

	followed := map[snowflake.ID]bool{}
	blocked := map[snowflake.ID]bool{}
	if authenticated {
		followed, err = s.repo.FollowedSet(ctx, s.db, viewerID, contributorIDs)
		if err != nil {
			return nil, err
		}

		blockedIDs, err := s.repo.BlockedUserIDs(ctx, s.db, viewerID)
		if err != nil {
			return nil, err
		}
		for _, id := range blockedIDs {
			blocked[id] = true
		}
	}

	authorUsers, err := s.repo.ContributorUserIDs(ctx, s.db, contributorIDs)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedPost, 0, len(posts))
	for _, post := range posts {
		if blocked[authorUsers[post.ContributorID]] {
			continue
		}

		entry := domain.RankedPost{
			Post:       post,
			Likes:      likes[post.ID],
			Follows:    followers[post.ContributorID],
			AvgRating:  ratings[post.ContributorID],
			IsFollowed: followed[post.ContributorID],
		}
		entry.Score = score(entry, authenticated)
		ranked = append(ranked, entry)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Post.ID > ranked[j].Post.ID
	})

	ranked = afterCursor(ranked, req.Pagination.PageToken)

	size := req.Pagination.PageSize
	if size <= 0 {
		size = 10
	}

	pageInfo := pagination.PageInfo{}
	if len(ranked) > size {
		ranked = ranked[:size]
		pageInfo.HasMore = true

		last := ranked[len(ranked)-1]
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:    last.Post.ID.String(),
			Score: strconv.FormatFloat(last.Score, 'f', -1, 64),
		})
		if err != nil {
			return nil, err
		}
		pageInfo.NextPageToken = token
	}

	return &domain.FeedResponse{Posts: ranked, PageInfo: pageInfo}, nil
}

func score(entry domain.RankedPost, authenticated bool) float64 {
	likes := float64(entry.Likes)
	follows := float64(entry.Follows)

	if !authenticated {
		return likes*anonLikesWeight + follows*anonFollowsWeight + entry.AvgRating*anonRatingWeight
	}

	isFollowed := 0.0
	if entry.IsFollowed {
		isFollowed = 1.0
	}
	return isFollowed*authFollowedWeight + likes*authLikesWeight + follows*authFollowsWeight + entry.AvgRating*authRatingWeight
}

// afterCursor drops every entry at or before the (score, id) pair the cursor
// marks. An unparsable cursor starts from the top.
func afterCursor(ranked []domain.RankedPost, token string) []domain.RankedPost {
	if token == "" {
		return ranked
	}

	cursor, err := pagination.DecodeCursor(token)
	if err != nil || cursor == nil || cursor.ID == "" || cursor.Score == "" {
		return ranked
	}
	lastScore, err := strconv.ParseFloat(cursor.Score, 64)
	if err != nil {
		return ranked
	}
	lastID, err := snowflake.ParseString(cursor.ID)
	if err != nil {
		return ranked
	}

	for i, entry := range ranked {
		if entry.Score < lastScore || (entry.Score == lastScore && entry.Post.ID < lastID) {
			return ranked[i:]
		}
	}
	return nil
}
