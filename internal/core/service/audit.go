package service

import (
	"context"
	"fmt"

	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunConsistencyAudit re-derives the settlement invariants over the whole
// ledger and reports every defect found. Read-only: nothing is corrected.
func (s *Service) RunConsistencyAudit(ctx context.Context) ([]domain.Violation, error) {
	var (
		orders      []*domain.Order
		auths       []*domain.Authorization
		settlements []*domain.Settlement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.repo.ListOrders(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		auths, err = s.repo.ListAuthorizations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = s.repo.ListSettlements(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Audit ledger load", zap.Error(err))
		return nil, domain.ErrInternal
	}

	violations := auditLedger(orders, auths, settlements)
	s.logger.Info("Consistency audit finished",
		zap.Int("orders", len(orders)),
		zap.Int("violations", len(violations)))

	return violations, nil
}

func auditLedger(orders []*domain.Order, auths []*domain.Authorization,
	settlements []*domain.Settlement) []domain.Violation {
	violations := make([]domain.Violation, 0)

	ordersByID := make(map[string]*domain.Order, len(orders))
	for _, o := range orders {
		if _, seen := ordersByID[o.ID]; seen {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationDuplicateOrderID,
				OrderID:     o.ID,
				Description: fmt.Sprintf("order id %q appears more than once", o.ID),
			})
			continue
		}
		ordersByID[o.ID] = o

		if !utils.HasCentPrecision(o.Amount) {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationPrecision,
				OrderID:     o.ID,
				Description: fmt.Sprintf("order amount %s has more than two decimal digits", o.Amount),
			})
		}
	}

	// Latest SUCCESS authorization per order.
	successAuth := make(map[string]*domain.Authorization)
	for _, a := range auths {
		if _, ok := ordersByID[a.OrderID]; !ok {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationOrphanRecord,
				OrderID:     a.OrderID,
				RecordID:    a.ID,
				Description: fmt.Sprintf("authorization %d references missing order %q", a.ID, a.OrderID),
			})
		}
		if !utils.HasCentPrecision(a.Amount) {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationPrecision,
				OrderID:     a.OrderID,
				RecordID:    a.ID,
				Description: fmt.Sprintf("authorization amount %s has more than two decimal digits", a.Amount),
			})
		}
		if a.Outcome != domain.AuthOutcomeSuccess {
			continue
		}
		if prev, ok := successAuth[a.OrderID]; !ok || a.CreatedAt.After(prev.CreatedAt) {
			successAuth[a.OrderID] = a
		}
	}

	settledByOrder := make(map[string]decimal.Decimal)
	for _, st := range settlements {
		if _, ok := ordersByID[st.OrderID]; !ok {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationOrphanRecord,
				OrderID:     st.OrderID,
				RecordID:    st.ID,
				Description: fmt.Sprintf("settlement %d references missing order %q", st.ID, st.OrderID),
			})
		}
		if st.Amount.IsNeg() {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationPrecision,
				OrderID:     st.OrderID,
				RecordID:    st.ID,
				Description: fmt.Sprintf("settlement amount %s is negative", st.Amount),
			})
		} else if !utils.HasCentPrecision(st.Amount) {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationPrecision,
				OrderID:     st.OrderID,
				RecordID:    st.ID,
				Description: fmt.Sprintf("settlement amount %s has more than two decimal digits", st.Amount),
			})
		}
		if st.Outcome != domain.SettlementOutcomeSuccess {
			continue
		}
		total, ok := settledByOrder[st.OrderID]
		if !ok {
			total = decimal.Zero
		}
		total, err := total.Add(st.Amount)
		if err != nil {
			continue
		}
		settledByOrder[st.OrderID] = total
	}

	for _, o := range orders {
		settled, ok := settledByOrder[o.ID]
		if !ok {
			settled = decimal.Zero
		}
		auth := successAuth[o.ID]

		if auth == nil {
			if !settled.IsZero() {
				violations = append(violations, domain.Violation{
					Kind:        domain.ViolationOverSettlement,
					OrderID:     o.ID,
					Settled:     settled,
					Description: fmt.Sprintf("order %q has settled %s without an approved authorization", o.ID, settled),
				})
			}
			if o.Status == domain.OrderStatusSettled {
				violations = append(violations, domain.Violation{
					Kind:        domain.ViolationSettlementMismatch,
					OrderID:     o.ID,
					Settled:     settled,
					Description: fmt.Sprintf("order %q is SETTLED but has no approved authorization", o.ID),
				})
			}
			continue
		}

		if utils.ExceedsByTolerance(settled, auth.Amount) {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationOverSettlement,
				OrderID:     o.ID,
				Authorized:  auth.Amount,
				Settled:     settled,
				Description: fmt.Sprintf("order %q settled %s over authorized %s", o.ID, settled, auth.Amount),
			})
		}

		if o.Status == domain.OrderStatusSettled && !utils.WithinTolerance(settled, auth.Amount) {
			violations = append(violations, domain.Violation{
				Kind:        domain.ViolationSettlementMismatch,
				OrderID:     o.ID,
				Authorized:  auth.Amount,
				Settled:     settled,
				Description: fmt.Sprintf("order %q is SETTLED with %s settled of %s authorized", o.ID, settled, auth.Amount),
			})
		}
	}

	return violations
}
