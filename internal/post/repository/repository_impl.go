package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/post/domain"
	"github.com/blessnhq/blessn/pkg/db/option"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, post *domain.Post) error {
	return db.WithContext(ctx).Create(post).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Post, error) {
	var post domain.Post
	err := db.WithContext(ctx).Preload("Files").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *repo) FindByContributor(ctx context.Context, db *gorm.DB, contributorID snowflake.ID, opts ...option.QueryOption) ([]domain.Post, error) {
	tx := db.WithContext(ctx).Preload("Files").Where("contributor_id = ?", contributorID)
	for _, opt := range opts {
		tx = opt.Apply(tx)
	}

	var posts []domain.Post
	err := tx.Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, excludeContributors []snowflake.ID) ([]domain.Post, error) {
	tx := db.WithContext(ctx).Preload("Files")
	if len(excludeContributors) > 0 {
		tx = tx.Where("contributor_id NOT IN ?", excludeContributors)
	}

	var posts []domain.Post
	err := tx.Find(&posts).Error
	return posts, err
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, "id = ?", id).Error
	})
}

func (r *repo) InsertLike(ctx context.Context, db *gorm.DB, like *domain.Like) error {
	return db.WithContext(ctx).Create(like).Error
}

func (r *repo) DeleteLike(ctx context.Context, db *gorm.DB, userID, postID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.Like{}).Error
}

func (r *repo) FindLike(ctx context.Context, db *gorm.DB, userID, postID snowflake.ID) (*domain.Like, error) {
	var like domain.Like
	err := db.WithContext(ctx).First(&like, "user_id = ? AND post_id = ?", userID, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (r *repo) CountLikes(ctx context.Context, db *gorm.DB, postID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

type pairCount struct {
	RefID snowflake.ID `gorm:"column:ref_id"`
	Total int64        `gorm:"column:total"`
}

func (r *repo) CountLikesByPost(ctx context.Context, db *gorm.DB, postIDs []snowflake.ID) (map[snowflake.ID]int64, error) {
	counts := make(map[snowflake.ID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []pairCount
	err := db.WithContext(ctx).
		Model(&domain.Like{}).
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

func (r *repo) InsertComment(ctx context.Context, db *gorm.DB, comment *domain.Comment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *repo) FindCommentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Comment, error) {
	var comment domain.Comment
	err := db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *repo) FindCommentsByPost(ctx context.Context, db *gorm.DB, postID snowflake.ID) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repo) DeleteComment(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&domain.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Comment{}, "id = ?", id).Error
	})
}

func (r *repo) InsertCommentLike(ctx context.Context, db *gorm.DB, like *domain.CommentLike) error {
	return db.WithContext(ctx).Create(like).Error
}

func (r *repo) DeleteCommentLike(ctx context.Context, db *gorm.DB, userID, commentID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&domain.CommentLike{}).Error
}

func (r *repo) FindCommentLike(ctx context.Context, db *gorm.DB, userID, commentID snowflake.ID) (*domain.CommentLike, error) {
	var like domain.CommentLike
	err := db.WithContext(ctx).First(&like, "user_id = ? AND comment_id = ?", userID, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (r *repo) CountCommentLikesByComment(ctx context.Context, db *gorm.DB, commentIDs []snowflake.ID) (map[snowflake.ID]int64, error) {
	counts := make(map[snowflake.ID]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	var rows []pairCount
	err := db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Select("comment_id AS ref_id, COUNT(*) AS total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.RefID] = row.Total
	}
	return counts, nil
}
