package domain

import (
	"context"
	"errors"
)

type RegisterUserRequest struct {
	Name          string
	FirstName     string
	LastName      string
	Email         string
	TermsAccepted bool
}

type UpdateNotificationSettingsRequest struct {
	Master *bool
	InApp  *bool
	Push   *bool
	Email  *bool
}

type Service interface {
	Register(ctx context.Context, req RegisterUserRequest) (User, error)
	Me(ctx context.Context) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	UpdateNotificationSettings(ctx context.Context, req UpdateNotificationSettingsRequest) (User, error)
	SetPushToken(ctx context.Context, registrationID string) error
	Deactivate(ctx context.Context) error
}

var (
	ErrInvalidUser   = errors.New("invalid_user")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrEmailTaken    = errors.New("email_taken")
	ErrUserNotFound  = errors.New("user_not_found")
	ErrUserInactive  = errors.New("user_inactive")
	ErrTermsRequired = errors.New("terms_not_accepted")
)
