package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	"github.com/blessnhq/blessn/internal/social/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
	"github.com/blessnhq/blessn/pkg/db"
)

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	Repo            domain.Repository
	ContributorRepo contributordomain.Repository
	UserRepo        userdomain.Repository
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	repo            domain.Repository
	contributorRepo contributordomain.Repository
	userRepo        userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("social.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		contributorRepo: p.ContributorRepo,
		userRepo:        p.UserRepo,
	}
}

func (s *Service) Follow(ctx context.Context, contributorID snowflake.ID) (*domain.Follow, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}

	contributor, err := s.contributorRepo.FindByID(ctx, s.db, contributorID)
	if err != nil {
		return nil, err
	}
	if contributor == nil {
		return nil, contributordomain.ErrContributorNotFound
	}

	follow := &domain.Follow{
		ID:            s.genID.Generate(),
		FollowerID:    userID,
		ContributorID: contributorID,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.InsertFollow(ctx, s.db, follow); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyFollowing
		}
		return nil, err
	}
	return follow, nil
}

func (s *Service) Unfollow(ctx context.Context, contributorID snowflake.ID) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return userdomain.ErrInvalidUser
	}

	follow, err := s.repo.FindFollow(ctx, s.db, userID, contributorID)
	if err != nil {
		return err
	}
	if follow == nil {
		return domain.ErrNotFollowing
	}
	return s.repo.DeleteFollow(ctx, s.db, userID, contributorID)
}

func (s *Service) MyFollows(ctx context.Context) ([]domain.Follow, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}
	return s.repo.FindFollowsByUser(ctx, s.db, userID)
}

func (s *Service) FollowerCount(ctx context.Context, contributorID snowflake.ID) (int64, error) {
	return s.repo.CountFollowers(ctx, s.db, contributorID)
}

func (s *Service) Block(ctx context.Context, blockedID snowflake.ID) (*domain.Block, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}
	if blockedID == userID {
		return nil, domain.ErrSelfBlock
	}

	blocked, err := s.userRepo.FindByID(ctx, s.db, blockedID)
	if err != nil {
		return nil, err
	}
	if blocked == nil {
		return nil, userdomain.ErrUserNotFound
	}

	block := &domain.Block{
		ID:        s.genID.Generate(),
		BlockerID: userID,
		BlockedID: blockedID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertBlock(ctx, s.db, block); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyBlocked
		}
		return nil, err
	}
	return block, nil
}

func (s *Service) Unblock(ctx context.Context, blockedID snowflake.ID) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return userdomain.ErrInvalidUser
	}

	blocks, err := s.repo.FindBlocksByUser(ctx, s.db, userID)
	if err != nil {
		return err
	}
	for _, block := range blocks {
		if block.BlockedID == blockedID {
			return s.repo.DeleteBlock(ctx, s.db, userID, blockedID)
		}
	}
	return domain.ErrNotBlocked
}

func (s *Service) MyBlocks(ctx context.Context) ([]domain.Block, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}
	return s.repo.FindBlocksByUser(ctx, s.db, userID)
}
