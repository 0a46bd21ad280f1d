package port

import (
	"context"

	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	Authorize(ctx context.Context, req *domain.AuthorizationRequest) (*domain.AuthorizationResult, error)
	Settle(ctx context.Context, orderID string, amount decimal.Decimal) (*domain.SettlementResult, error)

	GetOrderDetails(ctx context.Context, orderID string) (*domain.OrderDetails, error)
	ListOrders(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)

	RunConsistencyAudit(ctx context.Context) ([]domain.Violation, error)
}
