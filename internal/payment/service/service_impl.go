package service

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	consumerdomain "github.com/blessnhq/blessn/internal/consumer/domain"
	"github.com/blessnhq/blessn/internal/payment/domain"
	gateway "github.com/blessnhq/blessn/internal/providers/payment"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Gateway   gateway.Gateway
	Consumers consumerdomain.Service
}

type Service struct {
	log       *zap.Logger
	gateway   gateway.Gateway
	consumers consumerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("payment.service"),
		gateway:   p.Gateway,
		consumers: p.Consumers,
	}
}

func (s *Service) ListCards(ctx context.Context) ([]gateway.PaymentMethod, error) {
	consumer, err := s.consumers.EnsureCustomer(ctx)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListPaymentMethods(ctx, consumer.CustomerRef)
}

func (s *Service) AddCard(ctx context.Context, paymentMethodRef string) (*gateway.PaymentMethod, error) {
	paymentMethodRef = strings.TrimSpace(paymentMethodRef)
	if paymentMethodRef == "" {
		return nil, domain.ErrInvalidPaymentMethod
	}

	consumer, err := s.consumers.EnsureCustomer(ctx)
	if err != nil {
		return nil, err
	}
	return s.gateway.AttachPaymentMethod(ctx, consumer.CustomerRef, paymentMethodRef)
}

func (s *Service) RemoveCard(ctx context.Context, paymentMethodRef string) error {
	paymentMethodRef = strings.TrimSpace(paymentMethodRef)
	if paymentMethodRef == "" {
		return domain.ErrInvalidPaymentMethod
	}
	return s.gateway.DetachPaymentMethod(ctx, paymentMethodRef)
}
