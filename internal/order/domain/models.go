package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending         Status = "pending"
	StatusInProgress      Status = "in_progress"
	StatusDelivered       Status = "delivered"
	StatusRedoRequested   Status = "redo_requested"
	StatusRedone          Status = "redone"
	StatusRefundRequested Status = "refund_requested"
	StatusRefunded        Status = "refunded"
	StatusCancelRequested Status = "cancel_requested"
	StatusCancelled       Status = "cancelled"
	StatusFlagged         Status = "flagged"
)

// IsTerminal reports whether no further transition may leave the status.
// Delivered is not terminal: it still accepts redo and refund requests.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRefunded, StatusCancelled, StatusFlagged:
		return true
	}
	return false
}

// isTransitionAllowed is the single source of truth for the state machine.
func isTransitionAllowed(current, target Status) bool {
	switch target {
	case StatusInProgress:
		return current == StatusPending
	case StatusDelivered:
		return current == StatusInProgress || current == StatusRedone
	case StatusRedoRequested:
		return current == StatusDelivered
	case StatusRedone:
		return current == StatusRedoRequested
	case StatusRefundRequested:
		return !current.IsTerminal() && current != StatusRefundRequested
	case StatusRefunded:
		return current == StatusRefundRequested
	case StatusCancelRequested:
		return !current.IsTerminal() && current != StatusCancelRequested
	case StatusCancelled:
		return current == StatusCancelRequested
	case StatusFlagged:
		return !current.IsTerminal()
	}
	return false
}

// ParseStatus maps the wire value to a known status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusDelivered,
		StatusRedoRequested, StatusRedone,
		StatusRefundRequested, StatusRefunded,
		StatusCancelRequested, StatusCancelled, StatusFlagged:
		return Status(s), true
	}
	return "", false
}

// Order is one commissioned video transaction. Party references are nullable
// so deleting a profile never orphans the financial record.
type Order struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	ConsumerID    *snowflake.ID `gorm:"index" json:"consumer_id,omitempty"`
	ContributorID *snowflake.ID `gorm:"index" json:"contributor_id,omitempty"`
	OccasionID    *snowflake.ID `json:"occasion_id,omitempty"`

	ToWhom       string `gorm:"type:text" json:"to_whom"`
	Instructions string `gorm:"type:text" json:"instructions"`

	Turnaround contributordomain.Turnaround `gorm:"type:text;not null" json:"turnaround"`

	// Fee snapshot taken at placement. Total always equals the sum of the
	// other two; BeforeSave re-derives it on every persist.
	VideoFee   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"video_fee"`
	BookingFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"booking_fee"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	Status Status `gorm:"type:text;not null;index" json:"status"`

	// VideoURL holds the delivered (or redone) video.
	VideoURL string `gorm:"type:text" json:"video_url,omitempty"`

	PaidAt            *time.Time `json:"paid_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	RedoRequestedAt   *time.Time `json:"redo_requested_at,omitempty"`
	RedoneAt          *time.Time `json:"redone_at,omitempty"`
	RefundRequestedAt *time.Time `json:"refund_requested_at,omitempty"`
	RefundedAt        *time.Time `json:"refunded_at,omitempty"`
	CancelRequestedAt *time.Time `json:"cancel_requested_at,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	FlaggedAt         *time.Time `json:"flagged_at,omitempty"`

	CancelReason  string `gorm:"type:text" json:"cancel_reason,omitempty"`
	FlaggedReason string `gorm:"type:text" json:"flagged_reason,omitempty"`

	Archived bool `gorm:"not null;default:false" json:"archived"`
	Reviewed bool `gorm:"not null;default:false" json:"reviewed"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// CanTransition reports whether the order may move to target from its
// current status.
func (o *Order) CanTransition(target Status) bool {
	return isTransitionAllowed(o.Status, target)
}

// BeforeSave keeps the total derived no matter which code path persists.
func (o *Order) BeforeSave(*gorm.DB) error {
	o.Total = o.VideoFee.Add(o.BookingFee)
	return nil
}

// Review is the consumer's 1..5 rating of a delivered order, one per order.
type Review struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID       snowflake.ID `gorm:"uniqueIndex;not null" json:"order_id"`
	ConsumerID    snowflake.ID `gorm:"index;not null" json:"consumer_id"`
	ContributorID snowflake.ID `gorm:"index;not null" json:"contributor_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
