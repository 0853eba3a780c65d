package service

import (
	"context"
	"strings"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
	"github.com/blessnhq/blessn/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
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
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterUserRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.FirstName) == "" {
		return domain.User{}, domain.ErrInvalidName
	}
	if !req.TermsAccepted {
		return domain.User{}, domain.ErrTermsRequired
	}

	now := s.clock.Now()
	user := domain.User{
		ID:            s.genID.Generate(),
		Name:          strings.TrimSpace(req.Name),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         email,
		TermsAccepted: true,
		Active:        true,

		MasterNotification: true,
		InAppNotification:  true,
		PushNotification:   true,
		EmailNotification:  true,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) Me(ctx context.Context) (domain.User, error) {
	return s.current(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.User, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || userID == 0 {
		return domain.User{}, domain.ErrInvalidUser
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *user, nil
}

func (s *Service) UpdateNotificationSettings(ctx context.Context, req domain.UpdateNotificationSettingsRequest) (domain.User, error) {
	user, err := s.current(ctx)
	if err != nil {
		return domain.User{}, err
	}

	if req.Master != nil {
		user.MasterNotification = *req.Master
	}
	if req.InApp != nil {
		user.InAppNotification = *req.InApp
	}
	if req.Push != nil {
		user.PushNotification = *req.Push
	}
	if req.Email != nil {
		user.EmailNotification = *req.Email
	}
	user.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *Service) SetPushToken(ctx context.Context, registrationID string) error {
	user, err := s.current(ctx)
	if err != nil {
		return err
	}

	user.RegistrationID = strings.TrimSpace(registrationID)
	user.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, s.db, &user)
}

func (s *Service) Deactivate(ctx context.Context) error {
	user, err := s.current(ctx)
	if err != nil {
		return err
	}

	user.Active = false
	user.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, s.db, &user)
}

func (s *Service) current(ctx context.Context) (domain.User, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.User{}, domain.ErrInvalidUser
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *user, nil
}
