package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"

	"github.com/blessnhq/blessn/pkg/db/pagination"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTurnaround = errors.New("invalid turnaround")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrReviewExists      = errors.New("order already reviewed")
	ErrNotOrderParty     = errors.New("caller is not a party to this order")

	// ErrRefundIncomplete reports that at least one payment could not be
	// refunded; the order status was left unchanged so the call can be
	// retried.
	ErrRefundIncomplete = errors.New("one or more payments could not be refunded")

	// ErrChargeFailed reports that the gateway declined or never confirmed
	// the charge; nothing was persisted.
	ErrChargeFailed = errors.New("payment charge failed")
)

type PlaceOrderRequest struct {
	ContributorID    snowflake.ID  `json:"contributor_id"`
	OccasionID       *snowflake.ID `json:"occasion_id"`
	ToWhom           string        `json:"to_whom"`
	Instructions     string        `json:"instructions"`
	Turnaround       string        `json:"turnaround"`
	PaymentMethodRef string        `json:"payment_method"`
}

type ListOrdersRequest struct {
	Filter     ListFilter
	Pagination pagination.Pagination
}

type ListOrdersResponse struct {
	Orders   []Order             `json:"orders"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type LeaveReviewRequest struct {
	OrderID snowflake.ID `json:"-"`
	Rating  int          `json:"rating"`
	Comment string       `json:"comment"`
}

type Service interface {
	// Place runs the full placement flow: moderation gate, pricing snapshot,
	// gateway charge, then a single transaction persisting the order, its
	// payment, and the chat channel. A failed or unconfirmed charge leaves
	// no state behind.
	Place(ctx context.Context, req *PlaceOrderRequest) (*Order, error)

	Get(ctx context.Context, id snowflake.ID) (*Order, error)
	List(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error)

	MarkDelivered(ctx context.Context, id snowflake.ID, videoURL string) (*Order, error)
	RequestRedo(ctx context.Context, id snowflake.ID) (*Order, error)
	MarkRedone(ctx context.Context, id snowflake.ID, videoURL string) (*Order, error)
	RequestRefund(ctx context.Context, id snowflake.ID) (*Order, error)
	MarkRefunded(ctx context.Context, id snowflake.ID) (*Order, error)
	RequestCancellation(ctx context.Context, id snowflake.ID) (*Order, error)
	MarkCancelled(ctx context.Context, id snowflake.ID, reason string) (*Order, error)
	Flag(ctx context.Context, id snowflake.ID, reason string) (*Order, error)

	LeaveReview(ctx context.Context, req *LeaveReviewRequest) (*Review, error)
	SetArchived(ctx context.Context, id snowflake.ID, archived bool) (*Order, error)
}
