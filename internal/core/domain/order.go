package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusAuthorized OrderStatus = "AUTHORIZED"
	OrderStatusSettled    OrderStatus = "SETTLED"
	OrderStatusError      OrderStatus = "ERROR"
)

// ParseOrderStatus validates a status filter value coming from a client.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusAuthorized, OrderStatusSettled, OrderStatusError:
		return OrderStatus(s), true
	}
	return "", false
}

type Order struct {
	ID           string
	Status       OrderStatus
	CustomerName string
	CardLast4    string
	Amount       decimal.Decimal
	CreatedAt    time.Time
}
