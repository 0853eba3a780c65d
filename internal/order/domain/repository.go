package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/pkg/db/option"
)

// ListFilter narrows order listings. Nil fields are ignored.
type ListFilter struct {
	ConsumerID    *snowflake.ID
	ContributorID *snowflake.ID
	Status        *Status
	Archived      *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)

	// FindByIDForUpdate locks the row for the duration of the surrounding
	// transaction on dialects that support it.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)

	Update(ctx context.Context, db *gorm.DB, order *Order) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, opts ...option.QueryOption) ([]Order, error)

	InsertReview(ctx context.Context, db *gorm.DB, review *Review) error
	FindReviewByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*Review, error)
	FindReviewsByContributor(ctx context.Context, db *gorm.DB, contributorID snowflake.ID) ([]Review, error)
}
