package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type AuthOutcome string

const (
	AuthOutcomeSuccess           AuthOutcome = "SUCCESS"
	AuthOutcomeInsufficientFunds AuthOutcome = "INSUFFICIENT_FUNDS"
	AuthOutcomeIncorrectDetails  AuthOutcome = "INCORRECT_DETAILS"
	AuthOutcomeServerError       AuthOutcome = "SERVER_ERROR"
)

// Authorization is the current provider decision for an order.
// At most one row exists per order; a new attempt replaces the old one.
type Authorization struct {
	ID        uint64
	OrderID   string
	Token     string
	Amount    decimal.Decimal
	Outcome   AuthOutcome
	CreatedAt time.Time
}

type Customer struct {
	Name  string
	Email string
}

// Card carries raw card data for a single provider call.
// It is never persisted.
type Card struct {
	Number string
	Month  int
	Year   int
	CVV    string
}

type AuthorizationRequest struct {
	OrderID  string
	Customer Customer
	Card     Card
	Amount   decimal.Decimal
}

type AuthorizationStatus string

const (
	AuthorizationStatusAuthorized AuthorizationStatus = "AUTHORIZED"
	AuthorizationStatusDeclined   AuthorizationStatus = "DECLINED"
	AuthorizationStatusError      AuthorizationStatus = "ERROR"
)

type AuthorizationResult struct {
	Status     AuthorizationStatus
	Code       AuthOutcome
	Token      string
	MaskedCard string
	Amount     decimal.Decimal
}
