package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blessnhq/blessn/internal/usercontext"
)

const (
	// HeaderUserID carries the authenticated user identity set by the
	// API gateway in front of this service.
	HeaderUserID = "X-User-ID"

	// HeaderRequestID correlates log lines across services.
	HeaderRequestID = "X-Request-ID"

	contextUserIDKey    = "user_id"
	contextAdminKey     = "is_admin"
	contextRequestIDKey = "request_id"
)

// RequestID propagates the inbound request id, minting one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestIDKey, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger emits one structured line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString(contextRequestIDKey)),
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.Error(lastErr.Err))
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

// Identity resolves the gateway-supplied user header into the request
// context. Requests without the header pass through anonymously; the
// per-route guards decide whether that is acceptable.
func (s *Server) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if raw == "" {
			c.Next()
			return
		}

		userID, err := snowflake.ParseString(raw)
		if err != nil || userID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := usercontext.WithUserID(c.Request.Context(), userID)
		user, err := s.usersvc.GetByID(ctx, userID.String())
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !user.Active {
			AbortWithError(c, ErrForbidden)
			return
		}
		if user.Admin {
			ctx = usercontext.WithAdmin(ctx)
			c.Set(contextAdminKey, true)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Set(contextUserIDKey, userID.String())
		c.Next()
	}
}

// UserRequired rejects anonymous requests.
func (s *Server) UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := usercontext.UserIDFromContext(c.Request.Context()); !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// AdminRequired rejects requests that do not carry back-office privileges.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !usercontext.IsAdmin(c.Request.Context()) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}
