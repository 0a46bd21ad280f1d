package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type SettlementOutcome string

const (
	SettlementOutcomeSuccess     SettlementOutcome = "SUCCESS"
	SettlementOutcomeExceedsAuth SettlementOutcome = "EXCEEDS_AUTH"
)

// Settlement is an append-only capture against an authorized order.
type Settlement struct {
	ID        uint64
	OrderID   string
	Amount    decimal.Decimal
	Outcome   SettlementOutcome
	CreatedAt time.Time
}

type SettlementResult struct {
	OrderStatus       OrderStatus
	AvailableToSettle decimal.Decimal
}

type OrderDetails struct {
	Order             *Order
	Authorization     *Authorization
	Settlements       []*Settlement
	AvailableToSettle decimal.Decimal
}
