package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrGatewayDeclined reports a charge or refund the processor rejected.
	ErrGatewayDeclined = errors.New("payment gateway declined the request")
	// ErrGatewayUnavailable reports a transport failure talking to the processor.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

type ChargeRequest struct {
	CustomerID      string
	PaymentMethodID string
	Amount          decimal.Decimal
	Currency        string
	Description     string
}

type ChargeResult struct {
	ChargeID string
	Status   string
}

type RefundResult struct {
	RefundID string
	Status   string
}

type PaymentMethod struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

// Gateway is the narrow surface of the card processor the platform uses.
type Gateway interface {
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, customerID string) ([]PaymentMethod, error)
	DetachPaymentMethod(ctx context.Context, paymentMethodID string) error

	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, chargeID string) (*RefundResult, error)
}
