package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCheckoutRouter(t *testing.T, svc *mock.MockService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ch, err := NewCheckoutHandler(svc, zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	router.GET("/api/checkout/draft", ch.Draft)
	router.POST("/api/checkout/authorize", ch.Authorize)
	return router
}

const authorizeBody = `{
	"orderId": "ORD-1",
	"customer": {"name": "Jo Black", "email": "jo@example.com"},
	"card": {"number": "4242 4242 4242 4242", "month": 11, "year": 2030, "cvv": "123"},
	"amount": 50.00
}`

func TestCheckoutHandler_Authorize(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().Authorize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req *domain.AuthorizationRequest) (*domain.AuthorizationResult, error) {
			assert.Equal(t, "ORD-1", req.OrderID)
			assert.Equal(t, "Jo Black", req.Customer.Name)
			assert.Equal(t, 11, req.Card.Month)
			return &domain.AuthorizationResult{
				Status:     domain.AuthorizationStatusAuthorized,
				Code:       domain.AuthOutcomeSuccess,
				Token:      "AUTH-ABCDEF",
				MaskedCard: "**** **** **** 4242",
				Amount:     decimal.MustParse("50.00"),
			}, nil
		})

	router := newCheckoutRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/authorize", strings.NewReader(authorizeBody))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status     string `json:"status"`
		Token      string `json:"token"`
		MaskedCard string `json:"maskedCard"`
		Amount     string `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AUTHORIZED", resp.Status)
	assert.Equal(t, "AUTH-ABCDEF", resp.Token)
	assert.Equal(t, "**** **** **** 4242", resp.MaskedCard)
	assert.Equal(t, "50.00", resp.Amount)
}

func TestCheckoutHandler_AuthorizeDeclined(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().Authorize(gomock.Any(), gomock.Any()).
		Return(&domain.AuthorizationResult{
			Status: domain.AuthorizationStatusDeclined,
			Code:   domain.AuthOutcomeInsufficientFunds,
		}, nil)

	router := newCheckoutRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/authorize", strings.NewReader(authorizeBody))
	router.ServeHTTP(w, req)

	// Declines are business results the checkout UI renders, not transport errors.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Code   string `json:"code"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DECLINED", resp.Status)
	assert.Equal(t, "INSUFFICIENT_FUNDS", resp.Code)
	assert.Empty(t, resp.Token)
}

func TestCheckoutHandler_AuthorizeRejectsUnknownShape(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)

	router := newCheckoutRouter(t, svc)

	// No card block at all: reject before the workflow is reached.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/authorize",
		strings.NewReader(`{"orderId": "ORD-1", "amount": 50.00}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandler_Draft(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)

	router := newCheckoutRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/checkout/draft", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OrderID string `json:"orderId"`
		Amount  string `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.OrderID, "ORD-"))
	assert.NotEmpty(t, resp.Amount)
}
