package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blessnhq/blessn/internal/config"
)

const stripeBaseURL = "https://api.stripe.com/v1"

// stripeGateway talks to the Stripe REST API with form-encoded requests.
type stripeGateway struct {
	baseURL   string
	secretKey string
	client    *http.Client
	log       *zap.Logger
}

func NewStripeGateway(cfg config.Config, log *zap.Logger) Gateway {
	return &stripeGateway{
		baseURL:   stripeBaseURL,
		secretKey: cfg.StripeSecretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log.Named("provider.stripe"),
	}
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *stripeGateway) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	form := url.Values{}
	form.Set("email", email)
	if name != "" {
		form.Set("name", name)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := g.do(ctx, http.MethodPost, "/customers", form, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (g *stripeGateway) AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*PaymentMethod, error) {
	form := url.Values{}
	form.Set("customer", customerID)

	var out stripePaymentMethod
	path := fmt.Sprintf("/payment_methods/%s/attach", url.PathEscape(paymentMethodID))
	if err := g.do(ctx, http.MethodPost, path, form, &out); err != nil {
		return nil, err
	}
	pm := out.toPaymentMethod()
	return &pm, nil
}

func (g *stripeGateway) ListPaymentMethods(ctx context.Context, customerID string) ([]PaymentMethod, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("type", "card")

	var out struct {
		Data []stripePaymentMethod `json:"data"`
	}
	path := "/payment_methods?" + form.Encode()
	if err := g.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	methods := make([]PaymentMethod, 0, len(out.Data))
	for _, pm := range out.Data {
		methods = append(methods, pm.toPaymentMethod())
	}
	return methods, nil
}

func (g *stripeGateway) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	path := fmt.Sprintf("/payment_methods/%s/detach", url.PathEscape(paymentMethodID))
	return g.do(ctx, http.MethodPost, path, url.Values{}, nil)
}

func (g *stripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	form := url.Values{}
	// Stripe amounts are in the currency's smallest unit.
	form.Set("amount", strconv.FormatInt(req.Amount.Shift(2).Round(0).IntPart(), 10))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("customer", req.CustomerID)
	form.Set("payment_method", req.PaymentMethodID)
	form.Set("confirm", "true")
	form.Set("off_session", "true")
	if req.Description != "" {
		form.Set("description", req.Description)
	}

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := g.do(ctx, http.MethodPost, "/payment_intents", form, &out); err != nil {
		return nil, err
	}
	if out.Status != "succeeded" {
		g.log.Warn("charge not succeeded", zap.String("intent_id", out.ID), zap.String("status", out.Status))
		return nil, ErrGatewayDeclined
	}
	return &ChargeResult{ChargeID: out.ID, Status: out.Status}, nil
}

func (g *stripeGateway) Refund(ctx context.Context, chargeID string) (*RefundResult, error) {
	form := url.Values{}
	form.Set("payment_intent", chargeID)

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := g.do(ctx, http.MethodPost, "/refunds", form, &out); err != nil {
		return nil, err
	}
	if out.Status != "succeeded" && out.Status != "pending" {
		return nil, ErrGatewayDeclined
	}
	return &RefundResult{RefundID: out.ID, Status: out.Status}, nil
}

func (g *stripeGateway) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("stripe request failed", zap.String("path", path), zap.Error(err))
		return ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ErrGatewayUnavailable
	}

	if resp.StatusCode >= 400 {
		var stripeErr stripeError
		_ = json.Unmarshal(raw, &stripeErr)
		g.log.Warn("stripe error response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", stripeErr.Error.Code),
			zap.String("message", stripeErr.Error.Message),
		)
		if resp.StatusCode >= 500 {
			return ErrGatewayUnavailable
		}
		return ErrGatewayDeclined
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

type stripePaymentMethod struct {
	ID   string `json:"id"`
	Card struct {
		Brand    string `json:"brand"`
		Last4    string `json:"last4"`
		ExpMonth int    `json:"exp_month"`
		ExpYear  int    `json:"exp_year"`
	} `json:"card"`
}

func (pm stripePaymentMethod) toPaymentMethod() PaymentMethod {
	return PaymentMethod{
		ID:       pm.ID,
		Brand:    pm.Card.Brand,
		Last4:    pm.Card.Last4,
		ExpMonth: pm.Card.ExpMonth,
		ExpYear:  pm.Card.ExpYear,
	}
}
