package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// NewDraftOrderID produces a demo order identifier for the checkout form.
func NewDraftOrderID() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + id[:8]
}

// NewDraftAmount produces a demo amount between 10.00 and 500.00.
func NewDraftAmount() decimal.Decimal {
	cents := rand.Int63n(49001) + 1000
	return decimal.MustNew(cents, 2)
}
