package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidContributor  = errors.New("invalid contributor")
	ErrContributorNotFound = errors.New("contributor not found")
	ErrAlreadyApplied      = errors.New("contributor application already submitted")
	ErrNotApproved         = errors.New("contributor is not approved")
	ErrNegativePrice       = errors.New("delivery price must not be negative")
)

type ApplyRequest struct {
	Phone      string        `json:"phone"`
	State      string        `json:"state"`
	City       string        `json:"city"`
	Website    string        `json:"website"`
	CategoryID *snowflake.ID `json:"category_id"`
}

type UpdateProfileRequest struct {
	Phone      *string       `json:"phone"`
	State      *string       `json:"state"`
	City       *string       `json:"city"`
	Website    *string       `json:"website"`
	CategoryID *snowflake.ID `json:"category_id"`

	NormalDeliveryPrice  *decimal.Decimal `json:"normal_delivery_price"`
	FastDeliveryPrice    *decimal.Decimal `json:"fast_delivery_price"`
	SameDayDeliveryPrice *decimal.Decimal `json:"same_day_delivery_price"`
}

type AddPhotoVideoRequest struct {
	FileURL     string `json:"file_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Service interface {
	// Apply submits the caller's contributor application. The profile is
	// created immediately but stays unapproved until an admin approves it.
	Apply(ctx context.Context, req *ApplyRequest) (*Contributor, error)

	// Approve marks the user's application approved. Admin only.
	Approve(ctx context.Context, userID snowflake.ID) error

	Get(ctx context.Context, id snowflake.ID) (*Contributor, error)
	GetByUserID(ctx context.Context, userID snowflake.ID) (*Contributor, error)
	UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*Contributor, error)

	AddPhotoVideo(ctx context.Context, req *AddPhotoVideoRequest) (*ContributorPhotoVideo, error)
	ListPhotoVideos(ctx context.Context, contributorID snowflake.ID) ([]ContributorPhotoVideo, error)
	RemovePhotoVideo(ctx context.Context, id snowflake.ID) error
}
