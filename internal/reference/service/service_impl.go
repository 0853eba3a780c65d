package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/reference/domain"
	"github.com/blessnhq/blessn/pkg/db"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("reference.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) CreateCategory(ctx context.Context, name, icon string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	category := &domain.Category{
		ID:        s.genID.Generate(),
		Name:      name,
		Icon:      strings.TrimSpace(icon),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertCategory(ctx, s.db, category); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.FindCategories(ctx, s.db)
}

func (s *Service) DeleteCategory(ctx context.Context, id snowflake.ID) error {
	category, err := s.repo.FindCategoryByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	return s.repo.DeleteCategory(ctx, s.db, id)
}

func (s *Service) CreateOccasion(ctx context.Context, name string) (*domain.Occasion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	occasion := &domain.Occasion{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertOccasion(ctx, s.db, occasion); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}
	return occasion, nil
}

func (s *Service) ListOccasions(ctx context.Context) ([]domain.Occasion, error) {
	return s.repo.FindOccasions(ctx, s.db)
}

func (s *Service) DeleteOccasion(ctx context.Context, id snowflake.ID) error {
	occasion, err := s.repo.FindOccasionByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if occasion == nil {
		return domain.ErrOccasionNotFound
	}
	return s.repo.DeleteOccasion(ctx, s.db, id)
}
