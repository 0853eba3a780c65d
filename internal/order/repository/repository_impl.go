package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/blessnhq/blessn/internal/order/domain"
	"github.com/blessnhq/blessn/pkg/db/option"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	return r.findByID(ctx, db, id, false)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	return r.findByID(ctx, db, id, true)
}

func (r *repo) findByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock bool) (*domain.Order, error) {
	tx := db.WithContext(ctx)
	// sqlite locks the whole database per write transaction already.
	if lock && tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var order domain.Order
	err := tx.First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Save(order).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, opts ...option.QueryOption) ([]domain.Order, error) {
	tx := db.WithContext(ctx).Model(&domain.Order{})

	if filter.ConsumerID != nil {
		tx = tx.Where("consumer_id = ?", *filter.ConsumerID)
	}
	if filter.ContributorID != nil {
		tx = tx.Where("contributor_id = ?", *filter.ContributorID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}
	if filter.Archived != nil {
		tx = tx.Where("archived = ?", *filter.Archived)
	}

	for _, opt := range opts {
		tx = opt.Apply(tx)
	}

	var orders []domain.Order
	err := tx.Find(&orders).Error
	return orders, err
}

func (r *repo) InsertReview(ctx context.Context, db *gorm.DB, review *domain.Review) error {
	return db.WithContext(ctx).Create(review).Error
}

func (r *repo) FindReviewByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*domain.Review, error) {
	var review domain.Review
	err := db.WithContext(ctx).First(&review, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *repo) FindReviewsByContributor(ctx context.Context, db *gorm.DB, contributorID snowflake.ID) ([]domain.Review, error) {
	var reviews []domain.Review
	err := db.WithContext(ctx).
		Where("contributor_id = ?", contributorID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
