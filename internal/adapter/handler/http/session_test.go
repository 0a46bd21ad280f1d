package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkarpelev/paymentgate/internal/adapter/auth"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAccessKey = "warehouse-key"

func newSessionRouter(t *testing.T, tokenService port.TokenService, accessKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sh, err := NewSessionHandler(tokenService, accessKey, zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	router.POST("/api/session", sh.CreateSession)

	protected := router.Group("/api/warehouse", authCheck(tokenService))
	protected.POST("/audit", func(ctx *gin.Context) {
		payload, exists := ctx.Get(operatorPayloadKey)
		require.True(t, exists)
		assert.Equal(t, operatorRole, payload.(*port.TokenPayload).Role)
		ctx.Status(http.StatusOK)
	})
	return router
}

func TestSessionHandler_TokenRoundTrip(t *testing.T) {
	tokenService, err := auth.New()
	require.NoError(t, err)

	router := newSessionRouter(t, tokenService, testAccessKey)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/session",
		strings.NewReader(`{"accessKey": "warehouse-key"}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// The issued token must open the protected warehouse group.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/warehouse/audit", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionHandler_WrongAccessKey(t *testing.T) {
	tokenService, err := auth.New()
	require.NoError(t, err)

	router := newSessionRouter(t, tokenService, testAccessKey)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/session",
		strings.NewReader(`{"accessKey": "guess"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNAUTHORIZED", resp.Code)
}

func TestSessionHandler_EmptyConfiguredKeyRejectsAll(t *testing.T) {
	tokenService, err := auth.New()
	require.NoError(t, err)

	// An operator surface with no configured key stays closed.
	router := newSessionRouter(t, tokenService, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/session",
		strings.NewReader(`{"accessKey": ""}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/session",
		strings.NewReader(`{"accessKey": "anything"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthCheck(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "malformed header", header: "Bearer"},
		{name: "wrong type", header: "Basic abc"},
		{name: "bad token", header: "Bearer not-a-token"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokenService, err := auth.New()
			require.NoError(t, err)

			router := newSessionRouter(t, tokenService, testAccessKey)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/warehouse/audit", http.NoBody)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthCheck_RejectsForeignToken(t *testing.T) {
	issuer, err := auth.New()
	require.NoError(t, err)
	verifier, err := auth.New()
	require.NoError(t, err)

	token, err := issuer.CreateToken("operator")
	require.NoError(t, err)

	router := newSessionRouter(t, verifier, testAccessKey)

	// Tokens are bound to the issuing process key; a token from another
	// instance must not pass.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/warehouse/audit", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNAUTHORIZED", resp.Code)
	assert.Equal(t, domain.ErrInvalidToken.Error(), respMessage(t, w.Body.Bytes()))
}

func respMessage(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Message
}
