package port

import (
	"context"

	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
)

// ProviderRequest carries the raw card data for a single authorization call.
// It lives only for the duration of the call and is never persisted.
type ProviderRequest struct {
	OrderID    string
	CardNumber string
	CardMonth  int
	CardYear   int
	CVV        string
	Amount     decimal.Decimal
}

//go:generate mockgen -source=provider.go -destination=mock/provider.go -package=mock
type ProviderClient interface {
	// Authorize maps the provider response to an outcome. Transport failures
	// come back as AuthOutcomeServerError with the underlying error attached;
	// the outcome is always usable.
	Authorize(ctx context.Context, req *ProviderRequest) (domain.AuthOutcome, error)
}
