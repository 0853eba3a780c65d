package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	chatdomain "github.com/blessnhq/blessn/internal/chat/domain"
	consumerdomain "github.com/blessnhq/blessn/internal/consumer/domain"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	feedbackdomain "github.com/blessnhq/blessn/internal/feedback/domain"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	notificationdomain "github.com/blessnhq/blessn/internal/notification/domain"
	orderdomain "github.com/blessnhq/blessn/internal/order/domain"
	paymentdomain "github.com/blessnhq/blessn/internal/payment/domain"
	platformfeedomain "github.com/blessnhq/blessn/internal/platformfee/domain"
	postdomain "github.com/blessnhq/blessn/internal/post/domain"
	paymentgateway "github.com/blessnhq/blessn/internal/providers/payment"
	referencedomain "github.com/blessnhq/blessn/internal/reference/domain"
	socialdomain "github.com/blessnhq/blessn/internal/social/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return ErrInvalidRequest
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, moderationdomain.ErrContentRejected):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "content_rejected",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, userdomain.ErrInvalidUser):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: err.Error(),
		}
	case isPaymentError(err):
		return http.StatusPaymentRequired, errorPayload{
			Type:    "payment_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, paymentgateway.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "payment gateway unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, userdomain.ErrInvalidName),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrTermsRequired),
		errors.Is(err, contributordomain.ErrInvalidContributor),
		errors.Is(err, contributordomain.ErrNegativePrice),
		errors.Is(err, orderdomain.ErrInvalidTurnaround),
		errors.Is(err, orderdomain.ErrInvalidRating),
		errors.Is(err, platformfeedomain.ErrInvalidPercent),
		errors.Is(err, paymentdomain.ErrInvalidPaymentMethod),
		errors.Is(err, moderationdomain.ErrInvalidWord),
		errors.Is(err, chatdomain.ErrEmptyMessage),
		errors.Is(err, postdomain.ErrEmptyPost),
		errors.Is(err, postdomain.ErrEmptyComment),
		errors.Is(err, postdomain.ErrCommentCycle),
		errors.Is(err, postdomain.ErrParentMismatch),
		errors.Is(err, feedbackdomain.ErrEmptyMessage),
		errors.Is(err, referencedomain.ErrInvalidName),
		errors.Is(err, socialdomain.ErrSelfBlock):
		return true
	default:
		return false
	}
}

func isForbiddenError(err error) bool {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, userdomain.ErrUserInactive),
		errors.Is(err, contributordomain.ErrNotApproved),
		errors.Is(err, orderdomain.ErrNotOrderParty),
		errors.Is(err, chatdomain.ErrNotParticipant),
		errors.Is(err, postdomain.ErrNotAuthor):
		return true
	default:
		return false
	}
}

func isPaymentError(err error) bool {
	switch {
	case errors.Is(err, orderdomain.ErrChargeFailed),
		errors.Is(err, orderdomain.ErrRefundIncomplete),
		errors.Is(err, paymentgateway.ErrGatewayDeclined):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, consumerdomain.ErrConsumerNotFound),
		errors.Is(err, contributordomain.ErrContributorNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, chatdomain.ErrChannelNotFound),
		errors.Is(err, postdomain.ErrPostNotFound),
		errors.Is(err, postdomain.ErrCommentNotFound),
		errors.Is(err, notificationdomain.ErrNotificationNotFound),
		errors.Is(err, feedbackdomain.ErrFeedbackNotFound),
		errors.Is(err, moderationdomain.ErrWordNotFound),
		errors.Is(err, referencedomain.ErrCategoryNotFound),
		errors.Is(err, referencedomain.ErrOccasionNotFound),
		errors.Is(err, socialdomain.ErrNotFollowing),
		errors.Is(err, socialdomain.ErrNotBlocked),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, userdomain.ErrEmailTaken),
		errors.Is(err, contributordomain.ErrAlreadyApplied),
		errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, orderdomain.ErrReviewExists),
		errors.Is(err, socialdomain.ErrAlreadyFollowing),
		errors.Is(err, socialdomain.ErrAlreadyBlocked),
		errors.Is(err, moderationdomain.ErrWordExists),
		errors.Is(err, referencedomain.ErrNameTaken):
		return true
	default:
		return false
	}
}
