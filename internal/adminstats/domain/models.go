package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Period bounds a stats query; zero values mean unbounded.
type Period struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

type RegistrationStats struct {
	TotalUsers      int64 `json:"total_users"`
	NewUsers        int64 `json:"new_users"`
	Contributors    int64 `json:"contributors"`
	NewContributors int64 `json:"new_contributors"`
}

type ActivityStats struct {
	OrdersPlaced    int64           `json:"orders_placed"`
	OrdersDelivered int64           `json:"orders_delivered"`
	OrdersRefunded  int64           `json:"orders_refunded"`
	PostsCreated    int64           `json:"posts_created"`
	Revenue         decimal.Decimal `json:"revenue"`
}

type Service interface {
	Registrations(ctx context.Context, period Period) (*RegistrationStats, error)
	Activity(ctx context.Context, period Period) (*ActivityStats, error)
}
