package domain

import (
	"context"
	"errors"

	"github.com/blessnhq/blessn/internal/providers/payment"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// Service manages the caller's stored cards at the gateway. Charges and
// refunds are driven by the order lifecycle, not here.
type Service interface {
	ListCards(ctx context.Context) ([]payment.PaymentMethod, error)
	AddCard(ctx context.Context, paymentMethodRef string) (*payment.PaymentMethod, error)
	RemoveCard(ctx context.Context, paymentMethodRef string) error
}
