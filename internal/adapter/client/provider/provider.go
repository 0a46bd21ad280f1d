package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mkarpelev/paymentgate/internal/adapter/config"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	"go.uber.org/zap"
)

// Client talks to the external payment-authorization provider. The provider is
// an opaque collaborator; all this client does is map its answer to an outcome.
type Client struct {
	logger     *zap.Logger
	host       string
	httpClient *http.Client
}

func NewClient(cfg *config.Provider, log *zap.Logger) (*Client, error) {
	return &Client{
		host:   cfg.HostString,
		logger: log,
		// Request timeout counts as a provider failure, see Authorize.
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type cardDetails struct {
	CardNumber string `json:"CardNumber"`
	CardMonth  int    `json:"CardMonth"`
	CardYear   int    `json:"CardYear"`
	CCV        string `json:"CCV"`
}

type authorizeRequest struct {
	OrderID         string      `json:"OrderId"`
	CardDetails     cardDetails `json:"CardDetails"`
	RequestedAmount float64     `json:"RequestedAmount"`
}

type authorizeResponse struct {
	Success *bool  `json:"Success"`
	Reason  string `json:"Reason"`
}

// Authorize calls POST <provider>/authorize and maps the result:
// transport failure or timeout -> SERVER_ERROR, explicit success flag ->
// SUCCESS, decline reasons by substring, 402 -> INSUFFICIENT_FUNDS,
// 422 -> INCORRECT_DETAILS, anything else -> SERVER_ERROR.
func (c *Client) Authorize(ctx context.Context, req *port.ProviderRequest) (domain.AuthOutcome, error) {
	amount, ok := req.Amount.Float64()
	if !ok {
		return domain.AuthOutcomeServerError, fmt.Errorf("amount %s is not representable", req.Amount)
	}

	body, err := json.Marshal(authorizeRequest{
		OrderID: req.OrderID,
		CardDetails: cardDetails{
			CardNumber: req.CardNumber,
			CardMonth:  req.CardMonth,
			CardYear:   req.CardYear,
			CCV:        req.CVV,
		},
		RequestedAmount: amount,
	})
	if err != nil {
		return domain.AuthOutcomeServerError, err
	}

	requestStr := "http://" + c.host + "/authorize"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestStr, bytes.NewReader(body))
	if err != nil {
		return domain.AuthOutcomeServerError, fmt.Errorf("error on %s : %w", requestStr, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Fire authorization request", zap.String("order", req.OrderID))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.AuthOutcomeServerError, fmt.Errorf("request error %s : %w", requestStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		var result authorizeResponse
		err = json.NewDecoder(resp.Body).Decode(&result)
		if err != nil {
			return domain.AuthOutcomeServerError, fmt.Errorf("error on response decode: %w", err)
		}

		if result.Success != nil && *result.Success {
			return domain.AuthOutcomeSuccess, nil
		}

		reason := strings.ToLower(result.Reason)
		switch {
		case strings.Contains(reason, "insufficient"):
			return domain.AuthOutcomeInsufficientFunds, nil
		case strings.Contains(reason, "incorrect"), strings.Contains(reason, "invalid"):
			return domain.AuthOutcomeIncorrectDetails, nil
		}
		return domain.AuthOutcomeServerError, fmt.Errorf("unexpected provider response: %q", result.Reason)
	}

	switch resp.StatusCode {
	case http.StatusPaymentRequired:
		return domain.AuthOutcomeInsufficientFunds, nil
	case http.StatusUnprocessableEntity:
		return domain.AuthOutcomeIncorrectDetails, nil
	}

	c.logger.Error("unexpected status for authorization request",
		zap.String("order", req.OrderID), zap.Int("status", resp.StatusCode))
	return domain.AuthOutcomeServerError, fmt.Errorf("bad response %v for request %s", resp.StatusCode, requestStr)
}
