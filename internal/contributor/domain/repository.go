package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contributor *Contributor) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Contributor, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Contributor, error)
	Update(ctx context.Context, db *gorm.DB, contributor *Contributor) error

	InsertPhotoVideo(ctx context.Context, db *gorm.DB, item *ContributorPhotoVideo) error
	FindPhotoVideos(ctx context.Context, db *gorm.DB, contributorID snowflake.ID) ([]ContributorPhotoVideo, error)
	DeletePhotoVideo(ctx context.Context, db *gorm.DB, contributorID, id snowflake.ID) error
}
