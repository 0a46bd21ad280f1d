package http

import (
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	"go.uber.org/zap"
)

type WarehouseHandler struct {
	Handler
	service port.Service
}

func NewWarehouseHandler(service port.Service, logger *zap.Logger) (*WarehouseHandler, error) {
	return &WarehouseHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// Amount is a pointer so an explicit zero reaches the engine (INVALID_AMOUNT)
// while a missing field stays a request-shape error.
type settleRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

type settleResponse struct {
	Status            string          `json:"status"`
	AvailableToSettle decimal.Decimal `json:"availableToSettle"`
}

func (wh *WarehouseHandler) Settle(ctx *gin.Context) {
	req := settleRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		wh.handleValidationError(ctx, err)
		return
	}

	amount, err := decimal.NewFromFloat64(*req.Amount)
	if err != nil {
		wh.handleError(ctx, domain.ErrBadRequest)
		return
	}

	result, err := wh.service.Settle(ctx, ctx.Param("order"), amount)
	if err != nil {
		wh.handleError(ctx, err)
		return
	}

	wh.handleSuccess(ctx, settleResponse{
		Status:            string(result.OrderStatus),
		AvailableToSettle: result.AvailableToSettle,
	})
}

func (wh *WarehouseHandler) Audit(ctx *gin.Context) {
	violations, err := wh.service.RunConsistencyAudit(ctx)
	if err != nil {
		wh.handleError(ctx, err)
		return
	}

	wh.handleSuccess(ctx, struct {
		Violations []domain.Violation `json:"violations"`
	}{Violations: violations})
}
