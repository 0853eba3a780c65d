package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Service interface {
	// Notify persists an in-app notification and pushes it to the user's
	// device when their settings allow. Push failures are logged, never
	// returned; callers treat this as fire and forget.
	Notify(ctx context.Context, userID snowflake.ID, title, body string, metadata map[string]string)

	List(ctx context.Context) ([]Notification, error)
	MarkSeen(ctx context.Context, id snowflake.ID) error
	MarkAllSeen(ctx context.Context) error
}
