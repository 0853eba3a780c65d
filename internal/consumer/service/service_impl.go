package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/consumer/domain"
	"github.com/blessnhq/blessn/internal/providers/payment"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	UserRepo userdomain.Repository
	Gateway  payment.Gateway
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	userRepo userdomain.Repository
	gateway  payment.Gateway
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("consumer.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		userRepo: p.UserRepo,
		gateway:  p.Gateway,
	}
}

func (s *Service) EnsureCustomer(ctx context.Context) (*domain.Consumer, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}

	consumer, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if consumer != nil && consumer.CustomerRef != "" {
		return consumer, nil
	}

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrUserNotFound
	}

	customerRef, err := s.gateway.CreateCustomer(ctx, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if consumer == nil {
		consumer = &domain.Consumer{
			ID:          s.genID.Generate(),
			UserID:      userID,
			CustomerRef: customerRef,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Insert(ctx, s.db, consumer); err != nil {
			return nil, err
		}
		s.log.Info("gateway customer created", zap.Int64("user_id", int64(userID)))
		return consumer, nil
	}

	consumer.CustomerRef = customerRef
	consumer.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, consumer); err != nil {
		return nil, err
	}
	return consumer, nil
}
