package domain

import (
	"context"
	"errors"
)

var ErrConsumerNotFound = errors.New("consumer not found")

type Service interface {
	// EnsureCustomer returns the caller's consumer profile, creating it and
	// registering a gateway customer on first use.
	EnsureCustomer(ctx context.Context) (*Consumer, error)
}
