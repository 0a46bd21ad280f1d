package port

import (
	"context"

	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
)

// SettleFn runs inside the settlement transaction with the order row locked.
// settled is the sum of prior SUCCESS settlements for the order; auth is nil
// when the order has no authorization row. It returns the settlement to append
// and the status the order moves to.
type SettleFn func(order *domain.Order, auth *domain.Authorization,
	settled decimal.Decimal) (*domain.Settlement, domain.OrderStatus, error)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
	ListOrders(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)

	// Authorization
	ReplaceAuthorization(ctx context.Context, auth *domain.Authorization) (*domain.Authorization, error)
	ReadAuthorization(ctx context.Context, orderID string) (*domain.Authorization, error)
	ListAuthorizations(ctx context.Context) ([]*domain.Authorization, error)

	// Settlement
	SettleOrder(ctx context.Context, orderID string, fn SettleFn) (*domain.Settlement, error)
	ListSettlementsByOrder(ctx context.Context, orderID string) ([]*domain.Settlement, error)
	ListSettlements(ctx context.Context) ([]*domain.Settlement, error)
}
