package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/contributor/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
	"github.com/blessnhq/blessn/pkg/db"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	UserRepo userdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	userRepo userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("contributor.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		userRepo: p.UserRepo,
	}
}

func (s *Service) Apply(ctx context.Context, req *domain.ApplyRequest) (*domain.Contributor, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrUserNotFound
	}
	if user.AppliedContributor {
		return nil, domain.ErrAlreadyApplied
	}

	now := s.clock.Now()
	contributor := &domain.Contributor{
		ID:         s.genID.Generate(),
		UserID:     userID,
		Phone:      strings.TrimSpace(req.Phone),
		State:      strings.TrimSpace(req.State),
		City:       strings.TrimSpace(req.City),
		Website:    strings.TrimSpace(req.Website),
		CategoryID: req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, contributor); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrAlreadyApplied
			}
			return err
		}
		user.AppliedContributor = true
		user.UpdatedAt = now
		return s.userRepo.Update(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("contributor application submitted",
		zap.Int64("user_id", int64(userID)),
		zap.Int64("contributor_id", int64(contributor.ID)),
	)
	return contributor, nil
}

func (s *Service) Approve(ctx context.Context, userID snowflake.ID) error {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return userdomain.ErrUserNotFound
	}

	contributor, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return err
	}
	if contributor == nil {
		return domain.ErrContributorNotFound
	}

	user.ApprovedContributor = true
	user.UpdatedAt = s.clock.Now()
	if err := s.userRepo.Update(ctx, s.db, user); err != nil {
		return err
	}

	s.log.Info("contributor approved", zap.Int64("user_id", int64(userID)))
	return nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Contributor, error) {
	contributor, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if contributor == nil {
		return nil, domain.ErrContributorNotFound
	}
	return contributor, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID snowflake.ID) (*domain.Contributor, error) {
	contributor, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if contributor == nil {
		return nil, domain.ErrContributorNotFound
	}
	return contributor, nil
}

func (s *Service) UpdateProfile(ctx context.Context, req *domain.UpdateProfileRequest) (*domain.Contributor, error) {
	contributor, err := s.mine(ctx)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		contributor.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.State != nil {
		contributor.State = strings.TrimSpace(*req.State)
	}
	if req.City != nil {
		contributor.City = strings.TrimSpace(*req.City)
	}
	if req.Website != nil {
		contributor.Website = strings.TrimSpace(*req.Website)
	}
	if req.CategoryID != nil {
		contributor.CategoryID = req.CategoryID
	}

	if req.NormalDeliveryPrice != nil {
		if req.NormalDeliveryPrice.IsNegative() {
			return nil, domain.ErrNegativePrice
		}
		contributor.NormalDeliveryPrice = *req.NormalDeliveryPrice
	}
	if req.FastDeliveryPrice != nil {
		if req.FastDeliveryPrice.IsNegative() {
			return nil, domain.ErrNegativePrice
		}
		contributor.FastDeliveryPrice = *req.FastDeliveryPrice
	}
	if req.SameDayDeliveryPrice != nil {
		if req.SameDayDeliveryPrice.IsNegative() {
			return nil, domain.ErrNegativePrice
		}
		contributor.SameDayDeliveryPrice = *req.SameDayDeliveryPrice
	}

	contributor.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, contributor); err != nil {
		return nil, err
	}
	return contributor, nil
}

func (s *Service) AddPhotoVideo(ctx context.Context, req *domain.AddPhotoVideoRequest) (*domain.ContributorPhotoVideo, error) {
	contributor, err := s.mine(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FileURL) == "" {
		return nil, domain.ErrInvalidContributor
	}

	item := &domain.ContributorPhotoVideo{
		ID:            s.genID.Generate(),
		ContributorID: contributor.ID,
		FileURL:       strings.TrimSpace(req.FileURL),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.InsertPhotoVideo(ctx, s.db, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListPhotoVideos(ctx context.Context, contributorID snowflake.ID) ([]domain.ContributorPhotoVideo, error) {
	return s.repo.FindPhotoVideos(ctx, s.db, contributorID)
}

func (s *Service) RemovePhotoVideo(ctx context.Context, id snowflake.ID) error {
	contributor, err := s.mine(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeletePhotoVideo(ctx, s.db, contributor.ID, id)
}

// mine resolves the caller's own contributor profile.
func (s *Service) mine(ctx context.Context) (*domain.Contributor, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}
	contributor, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if contributor == nil {
		return nil, domain.ErrContributorNotFound
	}
	return contributor, nil
}
