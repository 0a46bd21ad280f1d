package domain

import "github.com/govalues/decimal"

type ViolationKind string

const (
	ViolationDuplicateOrderID   ViolationKind = "DUPLICATE_ORDER_ID"
	ViolationOrphanRecord       ViolationKind = "ORPHAN_RECORD"
	ViolationPrecision          ViolationKind = "PRECISION_VIOLATION"
	ViolationOverSettlement     ViolationKind = "OVER_SETTLEMENT"
	ViolationSettlementMismatch ViolationKind = "SETTLEMENT_MISMATCH"
)

// Violation is a single invariant defect found by the consistency audit.
// The audit reports, it never corrects.
type Violation struct {
	Kind        ViolationKind   `json:"kind"`
	OrderID     string          `json:"order_id,omitempty"`
	RecordID    uint64          `json:"record_id,omitempty"`
	Authorized  decimal.Decimal `json:"authorized"`
	Settled     decimal.Decimal `json:"settled"`
	Description string          `json:"description"`
}
