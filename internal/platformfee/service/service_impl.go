package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/config"
	"github.com/blessnhq/blessn/internal/platformfee/domain"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Config config.Config
	Repo   domain.Repository
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	repo           domain.Repository
	defaultPercent decimal.Decimal
}

func New(p Params) domain.Service {
	defaultPercent, err := decimal.NewFromString(p.Config.DefaultBookingFeePercent)
	if err != nil {
		defaultPercent = decimal.NewFromInt(25)
		p.Log.Warn("invalid BOOKING_FEE_PERCENT, using 25",
			zap.String("value", p.Config.DefaultBookingFeePercent))
	}

	return &Service{
		db:             p.DB,
		log:            p.Log.Named("platformfee.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		repo:           p.Repo,
		defaultPercent: defaultPercent,
	}
}

func (s *Service) CurrentPercent(ctx context.Context) (decimal.Decimal, error) {
	fee, err := s.repo.FindCurrent(ctx, s.db)
	if err != nil {
		return decimal.Zero, err
	}
	if fee == nil {
		return s.defaultPercent, nil
	}
	return fee.Percent, nil
}

func (s *Service) SetPercent(ctx context.Context, percent decimal.Decimal) (*domain.BookingFee, error) {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidPercent
	}

	fee, err := s.repo.FindCurrent(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		fee = &domain.BookingFee{ID: s.genID.Generate()}
	}

	fee.Percent = percent
	fee.UpdatedAt = s.clock.Now()
	if err := s.repo.Upsert(ctx, s.db, fee); err != nil {
		return nil, err
	}

	s.log.Info("booking fee updated", zap.String("percent", percent.String()))
	return fee, nil
}
