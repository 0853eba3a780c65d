package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrEmptyMessage     = errors.New("message is required")
)

type SubmitRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type Service interface {
	Submit(ctx context.Context, req *SubmitRequest) (*Feedback, error)
	Mine(ctx context.Context) ([]Feedback, error)

	// Admin operations.
	ListAll(ctx context.Context) ([]Feedback, error)
	Respond(ctx context.Context, id snowflake.ID, response string) (*Feedback, error)
	MarkRead(ctx context.Context, id snowflake.ID) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id snowflake.ID) error
}
