package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/feedback/domain"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	notificationdomain "github.com/blessnhq/blessn/internal/notification/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Moderation moderationdomain.Service
	Notifier   notificationdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	moderation moderationdomain.Service
	notifier   notificationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("feedback.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		moderation: p.Moderation,
		notifier:   p.Notifier,
	}
}

func (s *Service) Submit(ctx context.Context, req *domain.SubmitRequest) (*domain.Feedback, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}
	if err := s.moderation.Screen(ctx, message); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	feedback := &domain.Feedback{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Email:     strings.TrimSpace(req.Email),
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *Service) Mine(ctx context.Context) ([]domain.Feedback, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}
	return s.repo.FindByUser(ctx, s.db, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) Respond(ctx context.Context, id snowflake.ID, response string) (*domain.Feedback, error) {
	feedback, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, domain.ErrFeedbackNotFound
	}

	feedback.Responded = true
	feedback.Response = strings.TrimSpace(response)
	feedback.AdminRead = true
	feedback.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, feedback); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, feedback.UserID, "Feedback response", feedback.Response, map[string]string{
			"feedback_id": feedback.ID.String(),
		})
	}
	return feedback, nil
}

func (s *Service) MarkRead(ctx context.Context, id snowflake.ID) error {
	feedback, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if feedback == nil {
		return domain.ErrFeedbackNotFound
	}

	feedback.AdminRead = true
	feedback.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, s.db, feedback)
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx, s.db)
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	feedback, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if feedback == nil {
		return domain.ErrFeedbackNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
