package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/adapter/client/provider"
	"github.com/mkarpelev/paymentgate/internal/adapter/config"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*provider.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := provider.NewClient(&config.Provider{
		HostString: strings.TrimPrefix(srv.URL, "http://"),
		Timeout:    2 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	return client, srv
}

func testRequest() *port.ProviderRequest {
	return &port.ProviderRequest{
		OrderID:    "ORD-1",
		CardNumber: "4242424242424242",
		CardMonth:  11,
		CardYear:   2030,
		CVV:        "123",
		Amount:     decimal.MustParse("50.00"),
	}
}

func TestClient_AuthorizeMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		expOutcome domain.AuthOutcome
		expErr     bool
	}{
		{
			name:       "explicit success flag",
			status:     http.StatusOK,
			body:       `{"Success": true}`,
			expOutcome: domain.AuthOutcomeSuccess,
		},
		{
			name:       "insufficient funds reason",
			status:     http.StatusOK,
			body:       `{"Reason": "insufficient funds"}`,
			expOutcome: domain.AuthOutcomeInsufficientFunds,
		},
		{
			name:       "incorrect details reason",
			status:     http.StatusOK,
			body:       `{"Reason": "Incorrect card details"}`,
			expOutcome: domain.AuthOutcomeIncorrectDetails,
		},
		{
			name:       "invalid details reason",
			status:     http.StatusOK,
			body:       `{"Reason": "invalid expiry"}`,
			expOutcome: domain.AuthOutcomeIncorrectDetails,
		},
		{
			name:       "success flag false with unknown reason",
			status:     http.StatusOK,
			body:       `{"Success": false, "Reason": "celestial interference"}`,
			expOutcome: domain.AuthOutcomeServerError,
			expErr:     true,
		},
		{
			name:       "402 payment required",
			status:     http.StatusPaymentRequired,
			body:       `{}`,
			expOutcome: domain.AuthOutcomeInsufficientFunds,
		},
		{
			name:       "422 unprocessable",
			status:     http.StatusUnprocessableEntity,
			body:       `{}`,
			expOutcome: domain.AuthOutcomeIncorrectDetails,
		},
		{
			name:       "500 internal",
			status:     http.StatusInternalServerError,
			body:       `{}`,
			expOutcome: domain.AuthOutcomeServerError,
			expErr:     true,
		},
		{
			name:       "garbage body",
			status:     http.StatusOK,
			body:       `{{{`,
			expOutcome: domain.AuthOutcomeServerError,
			expErr:     true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/authorize", r.URL.Path)
				w.WriteHeader(test.status)
				_, _ = w.Write([]byte(test.body))
			})

			outcome, err := client.Authorize(context.Background(), testRequest())

			assert.Equal(t, test.expOutcome, outcome)
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_AuthorizeSendsCardDetails(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"Success": true}`))
	})

	_, err := client.Authorize(context.Background(), testRequest())
	assert.NoError(t, err)

	assert.Equal(t, "ORD-1", got["OrderId"])
	assert.Equal(t, 50.0, got["RequestedAmount"])
	card, ok := got["CardDetails"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "4242424242424242", card["CardNumber"])
	assert.Equal(t, "123", card["CCV"])
}

func TestClient_AuthorizeTransportFailure(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	outcome, err := client.Authorize(context.Background(), testRequest())

	assert.Equal(t, domain.AuthOutcomeServerError, outcome)
	assert.Error(t, err)
}

func TestClient_AuthorizeTimeout(t *testing.T) {
	client, err := provider.NewClient(&config.Provider{
		HostString: "localhost:1",
		Timeout:    50 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)

	outcome, err := client.Authorize(context.Background(), testRequest())

	assert.Equal(t, domain.AuthOutcomeServerError, outcome)
	assert.Error(t, err)
}
