package http

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type orderResponse struct {
	OrderID      string          `json:"orderId"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customerName"`
	CardLast4    string          `json:"cardLast4"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		OrderID:      o.ID,
		Status:       string(o.Status),
		CustomerName: o.CustomerName,
		CardLast4:    o.CardLast4,
		Amount:       o.Amount,
		CreatedAt:    o.CreatedAt,
	}
}

type authorizationResponse struct {
	Token     string          `json:"token"`
	Amount    decimal.Decimal `json:"amount"`
	Outcome   string          `json:"outcome"`
	CreatedAt time.Time       `json:"createdAt"`
}

type settlementResponse struct {
	ID        uint64          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Outcome   string          `json:"outcome"`
	CreatedAt time.Time       `json:"createdAt"`
}

type orderDetailsResponse struct {
	Order             orderResponse          `json:"order"`
	Authorization     *authorizationResponse `json:"authorization,omitempty"`
	Settlements       []settlementResponse   `json:"settlements"`
	AvailableToSettle decimal.Decimal        `json:"availableToSettle"`
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	details, err := oh.service.GetOrderDetails(ctx, ctx.Param("order"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	resp := orderDetailsResponse{
		Order:             toOrderResponse(details.Order),
		Settlements:       make([]settlementResponse, 0, len(details.Settlements)),
		AvailableToSettle: details.AvailableToSettle,
	}
	if details.Authorization != nil {
		resp.Authorization = &authorizationResponse{
			Token:     details.Authorization.Token,
			Amount:    details.Authorization.Amount,
			Outcome:   string(details.Authorization.Outcome),
			CreatedAt: details.Authorization.CreatedAt,
		}
	}
	for _, st := range details.Settlements {
		resp.Settlements = append(resp.Settlements, settlementResponse{
			ID:        st.ID,
			Amount:    st.Amount,
			Outcome:   string(st.Outcome),
			CreatedAt: st.CreatedAt,
		})
	}

	oh.handleSuccess(ctx, resp)
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	status, err := statusFilter(ctx)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	list, err := oh.service.ListOrders(ctx, status)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, toOrderResponse(o))
	}

	oh.handleSuccess(ctx, result)
}

// ExportCSV streams the (optionally filtered) order list for the orders viewer.
func (oh *OrderHandler) ExportCSV(ctx *gin.Context) {
	status, err := statusFilter(ctx)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	list, err := oh.service.ListOrders(ctx, status)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	ctx.Status(http.StatusOK)

	w := csv.NewWriter(ctx.Writer)
	_ = w.Write([]string{"order_id", "status", "customer_name", "card_last4", "amount", "created_at"})
	for _, o := range list {
		_ = w.Write([]string{
			o.ID,
			string(o.Status),
			o.CustomerName,
			o.CardLast4,
			o.Amount.String(),
			o.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		oh.logger.Error("csv export", zap.Error(err))
	}
}

func statusFilter(ctx *gin.Context) (*domain.OrderStatus, error) {
	raw, ok := ctx.GetQuery("status")
	if !ok || raw == "" {
		return nil, nil
	}
	status, ok := domain.ParseOrderStatus(raw)
	if !ok {
		return nil, domain.ErrBadRequest
	}
	return &status, nil
}
