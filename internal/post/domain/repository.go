package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/pkg/db/option"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, post *Post) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Post, error)
	FindByContributor(ctx context.Context, db *gorm.DB, contributorID snowflake.ID, opts ...option.QueryOption) ([]Post, error)
	FindAll(ctx context.Context, db *gorm.DB, excludeContributors []snowflake.ID) ([]Post, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertLike(ctx context.Context, db *gorm.DB, like *Like) error
	DeleteLike(ctx context.Context, db *gorm.DB, userID, postID snowflake.ID) error
	FindLike(ctx context.Context, db *gorm.DB, userID, postID snowflake.ID) (*Like, error)
	CountLikes(ctx context.Context, db *gorm.DB, postID snowflake.ID) (int64, error)

	// CountLikesByPost returns like counts for many posts in one query.
	CountLikesByPost(ctx context.Context, db *gorm.DB, postIDs []snowflake.ID) (map[snowflake.ID]int64, error)

	InsertComment(ctx context.Context, db *gorm.DB, comment *Comment) error
	FindCommentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Comment, error)
	FindCommentsByPost(ctx context.Context, db *gorm.DB, postID snowflake.ID) ([]Comment, error)
	DeleteComment(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertCommentLike(ctx context.Context, db *gorm.DB, like *CommentLike) error
	DeleteCommentLike(ctx context.Context, db *gorm.DB, userID, commentID snowflake.ID) error
	FindCommentLike(ctx context.Context, db *gorm.DB, userID, commentID snowflake.ID) (*CommentLike, error)
	CountCommentLikesByComment(ctx context.Context, db *gorm.DB, commentIDs []snowflake.ID) (map[snowflake.ID]int64, error)
}
