package http

import (
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	"github.com/mkarpelev/paymentgate/internal/core/utils"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	Handler
	service port.Service
}

func NewCheckoutHandler(service port.Service, logger *zap.Logger) (*CheckoutHandler, error) {
	return &CheckoutHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type draftResponse struct {
	OrderID string          `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
}

// Draft hands the checkout form a demo order id and amount.
func (ch *CheckoutHandler) Draft(ctx *gin.Context) {
	ch.handleSuccess(ctx, draftResponse{
		OrderID: utils.NewDraftOrderID(),
		Amount:  utils.NewDraftAmount(),
	})
}

type customerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type cardRequest struct {
	Number string `json:"number" binding:"required"`
	Month  int    `json:"month" binding:"required"`
	Year   int    `json:"year" binding:"required"`
	CVV    string `json:"cvv" binding:"required"`
}

// authorizeRequest is the single canonical request shape; anything that does
// not bind to it is rejected, there is no field aliasing.
type authorizeRequest struct {
	OrderID  string          `json:"orderId" binding:"required"`
	Customer customerRequest `json:"customer"`
	Card     cardRequest     `json:"card" binding:"required"`
	Amount   *float64        `json:"amount" binding:"required"`
}

type authorizeResponse struct {
	Status     string           `json:"status"`
	Code       string           `json:"code,omitempty"`
	Token      string           `json:"token,omitempty"`
	MaskedCard string           `json:"maskedCard,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
}

func (ch *CheckoutHandler) Authorize(ctx *gin.Context) {
	req := authorizeRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	amount, err := decimal.NewFromFloat64(*req.Amount)
	if err != nil {
		ch.handleError(ctx, domain.ErrInvalidAmount)
		return
	}

	result, err := ch.service.Authorize(ctx, &domain.AuthorizationRequest{
		OrderID: req.OrderID,
		Customer: domain.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
		},
		Card: domain.Card{
			Number: req.Card.Number,
			Month:  req.Card.Month,
			Year:   req.Card.Year,
			CVV:    req.Card.CVV,
		},
		Amount: amount,
	})
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	resp := authorizeResponse{Status: string(result.Status)}
	if result.Status == domain.AuthorizationStatusAuthorized {
		a := result.Amount
		resp.Token = result.Token
		resp.MaskedCard = result.MaskedCard
		resp.Amount = &a
	} else {
		resp.Code = string(result.Code)
	}

	ch.handleSuccess(ctx, resp)
}
