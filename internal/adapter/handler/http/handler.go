package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrBadRequest: http.StatusBadRequest,

	domain.ErrInvalidAccessKey:           http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,

	domain.ErrInvalidAmount:          http.StatusUnprocessableEntity,
	domain.ErrInvalidAmountPrecision: http.StatusUnprocessableEntity,
	domain.ErrOrderNotFound:          http.StatusNotFound,
	domain.ErrNoApprovedAuth:         http.StatusConflict,
	domain.ErrAmountExceedsAvailable: http.StatusUnprocessableEntity,
}

var errorCodeMap = map[error]string{
	domain.ErrBadRequest:                 "BAD_REQUEST",
	domain.ErrInvalidAmount:              "INVALID_AMOUNT",
	domain.ErrInvalidAmountPrecision:     "INVALID_AMOUNT_PRECISION",
	domain.ErrOrderNotFound:              "ORDER_NOT_FOUND",
	domain.ErrNoApprovedAuth:             "NO_APPROVED_AUTH",
	domain.ErrAmountExceedsAvailable:     "AMOUNT_EXCEEDS_AVAILABLE",
	domain.ErrDataNotFound:               "NOT_FOUND",
	domain.ErrConflictingData:            "CONFLICT",
	domain.ErrInvalidAccessKey:           "UNAUTHORIZED",
	domain.ErrEmptyAuthorizationHeader:   "UNAUTHORIZED",
	domain.ErrInvalidAuthorizationHeader: "UNAUTHORIZED",
	domain.ErrInvalidAuthorizationType:   "UNAUTHORIZED",
	domain.ErrInvalidToken:               "UNAUTHORIZED",
	domain.ErrExpiredToken:               "UNAUTHORIZED",
}

type errorResponse struct {
	Code              string           `json:"code"`
	Message           string           `json:"message"`
	AvailableToSettle *decimal.Decimal `json:"availableToSettle,omitempty"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    "BAD_REQUEST",
		Message: domain.ErrBadRequest.Error(),
	})
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.AbortWithStatusJSON(statusCode, errorResponse{
		Code:    errorCode(err),
		Message: err.Error(),
	})
}

// handleError resolves a business error to a stable code and HTTP status.
// ExceedsAvailableError additionally carries the amount still available.
func (h *Handler) handleError(ctx *gin.Context, err error) {
	var exceeds *domain.ExceedsAvailableError
	if errors.As(err, &exceeds) {
		available := exceeds.Available
		ctx.JSON(http.StatusUnprocessableEntity, errorResponse{
			Code:              "AMOUNT_EXCEEDS_AVAILABLE",
			Message:           err.Error(),
			AvailableToSettle: &available,
		})
		return
	}

	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(statusCode, errorResponse{
		Code:    errorCode(err),
		Message: err.Error(),
	})
}

func errorCode(err error) string {
	if code, ok := errorCodeMap[err]; ok {
		return code
	}
	return "SERVER_ERROR"
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
