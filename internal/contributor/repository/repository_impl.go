package repository

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/contributor/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, contributor *domain.Contributor) error {
	return db.WithContext(ctx).Create(contributor).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Contributor, error) {
	var c domain.Contributor
	err := db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Contributor, error) {
	var c domain.Contributor
	err := db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, contributor *domain.Contributor) error {
	return db.WithContext(ctx).Save(contributor).Error
}

func (r *repo) InsertPhotoVideo(ctx context.Context, db *gorm.DB, item *domain.ContributorPhotoVideo) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindPhotoVideos(ctx context.Context, db *gorm.DB, contributorID snowflake.ID) ([]domain.ContributorPhotoVideo, error) {
	var items []domain.ContributorPhotoVideo
	err := db.WithContext(ctx).
		Where("contributor_id = ?", contributorID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *repo) DeletePhotoVideo(ctx context.Context, db *gorm.DB, contributorID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("contributor_id = ? AND id = ?", contributorID, id).
		Delete(&domain.ContributorPhotoVideo{}).Error
}
