package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/notification/domain"
	"github.com/blessnhq/blessn/internal/providers/push"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
)

const pushTimeout = 10 * time.Second

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	UserRepo userdomain.Repository
	Push     push.Sender
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	userRepo userdomain.Repository
	push     push.Sender
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("notification.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		userRepo: p.UserRepo,
		push:     p.Push,
	}
}

func (s *Service) Notify(ctx context.Context, userID snowflake.ID, title, body string, metadata map[string]string) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil || user == nil {
		s.log.Warn("notify skipped, user lookup failed", zap.Int64("user_id", int64(userID)), zap.Error(err))
		return
	}
	if !user.MasterNotification {
		return
	}

	meta := make(datatypes.JSONMap, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	if user.InAppNotification {
		notification := &domain.Notification{
			ID:        s.genID.Generate(),
			UserID:    userID,
			Title:     title,
			Body:      body,
			Metadata:  meta,
			CreatedAt: s.clock.Now(),
		}
		if err := s.repo.Insert(ctx, s.db, notification); err != nil {
			s.log.Error("notification persist failed", zap.Int64("user_id", int64(userID)), zap.Error(err))
		}
	}

	if !user.PushNotification || user.RegistrationID == "" {
		return
	}

	// Push delivery must not slow down or fail the caller's request.
	token := user.RegistrationID
	go func() {
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
		defer cancel()

		err := s.push.Send(pushCtx, token, push.Notification{
			Title: title,
			Body:  body,
			Data:  metadata,
		})
		if err != nil {
			s.log.Warn("push delivery failed", zap.Int64("user_id", int64(userID)), zap.Error(err))
		}
	}()
}

func (s *Service) List(ctx context.Context) ([]domain.Notification, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}
	return s.repo.FindByUser(ctx, s.db, userID)
}

func (s *Service) MarkSeen(ctx context.Context, id snowflake.ID) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return userdomain.ErrInvalidUser
	}

	notification, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if notification == nil || notification.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	return s.repo.MarkSeen(ctx, s.db, userID, id)
}

func (s *Service) MarkAllSeen(ctx context.Context) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return userdomain.ErrInvalidUser
	}
	return s.repo.MarkSeen(ctx, s.db, userID)
}
