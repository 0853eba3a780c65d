package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/adminstats/domain"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	orderdomain "github.com/blessnhq/blessn/internal/order/domain"
	paymentdomain "github.com/blessnhq/blessn/internal/payment/domain"
	postdomain "github.com/blessnhq/blessn/internal/post/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

// Service answers back-office aggregate queries straight off the store; the
// numbers are informational and need no repository indirection.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("adminstats.service"),
	}
}

func (s *Service) Registrations(ctx context.Context, period domain.Period) (*domain.RegistrationStats, error) {
	stats := &domain.RegistrationStats{}

	if err := s.db.WithContext(ctx).Model(&userdomain.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := inPeriod(s.db.WithContext(ctx).Model(&userdomain.User{}), period).Count(&stats.NewUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&contributordomain.Contributor{}).Count(&stats.Contributors).Error; err != nil {
		return nil, err
	}
	if err := inPeriod(s.db.WithContext(ctx).Model(&contributordomain.Contributor{}), period).Count(&stats.NewContributors).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) Activity(ctx context.Context, period domain.Period) (*domain.ActivityStats, error) {
	stats := &domain.ActivityStats{Revenue: decimal.Zero}

	if err := inPeriod(s.db.WithContext(ctx).Model(&orderdomain.Order{}), period).Count(&stats.OrdersPlaced).Error; err != nil {
		return nil, err
	}
	if err := inPeriod(s.db.WithContext(ctx).Model(&orderdomain.Order{}), period).
		Where("status = ?", orderdomain.StatusDelivered).
		Count(&stats.OrdersDelivered).Error; err != nil {
		return nil, err
	}
	if err := inPeriod(s.db.WithContext(ctx).Model(&orderdomain.Order{}), period).
		Where("status = ?", orderdomain.StatusRefunded).
		Count(&stats.OrdersRefunded).Error; err != nil {
		return nil, err
	}
	if err := inPeriod(s.db.WithContext(ctx).Model(&postdomain.Post{}), period).Count(&stats.PostsCreated).Error; err != nil {
		return nil, err
	}

	// Revenue is the sum of captured, not-refunded payments.
	var payments []paymentdomain.Payment
	if err := inPeriod(s.db.WithContext(ctx).Where("refunded = ?", false), period).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	for _, payment := range payments {
		stats.Revenue = stats.Revenue.Add(payment.Amount)
	}
	return stats, nil
}

func inPeriod(tx *gorm.DB, period domain.Period) *gorm.DB {
	if !period.From.IsZero() {
		tx = tx.Where("created_at >= ?", period.From)
	}
	if !period.To.IsZero() {
		tx = tx.Where("created_at < ?", period.To)
	}
	return tx
}
