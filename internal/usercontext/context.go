package usercontext

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// UserContextKey is the request context key for the authenticated user ID.
type UserContextKey struct{}

// AdminContextKey marks the request as carrying back-office privileges.
type AdminContextKey struct{}

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, userID snowflake.ID) context.Context {
	return context.WithValue(ctx, UserContextKey{}, userID)
}

// WithAdmin marks the context as an admin request.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, AdminContextKey{}, true)
}

// UserIDFromContext returns the user ID from context, if set.
func UserIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	value := ctx.Value(UserContextKey{})
	if value == nil {
		return 0, false
	}
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// IsAdmin reports whether the context carries back-office privileges.
func IsAdmin(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	admin, ok := ctx.Value(AdminContextKey{}).(bool)
	return ok && admin
}
