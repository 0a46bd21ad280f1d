package service

import (
	"context"
	"errors"
	"time"

	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	"github.com/mkarpelev/paymentgate/internal/core/utils"
	"go.uber.org/zap"
)

type Service struct {
	repo     port.Repository
	provider port.ProviderClient
	logger   *zap.Logger
}

func NewService(repo port.Repository, provider port.ProviderClient, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:     repo,
		provider: provider,
		logger:   logger,
	}, nil
}

// Authorize runs the full authorization workflow: validate, create the order
// if absent, call the provider, record the outcome and move the order status.
// The raw card number and CVV never reach the repository.
func (s *Service) Authorize(ctx context.Context, req *domain.AuthorizationRequest) (*domain.AuthorizationResult, error) {
	if req == nil || req.OrderID == "" {
		return nil, domain.ErrBadRequest
	}
	if err := utils.ValidateCard(req.Card.Number); err != nil {
		return nil, domain.ErrBadRequest
	}
	if req.Card.Month < 1 || req.Card.Month > 12 || req.Card.Year <= 0 || req.Card.CVV == "" {
		return nil, domain.ErrBadRequest
	}
	if !req.Amount.IsPos() {
		return nil, domain.ErrInvalidAmount
	}
	if !utils.HasCentPrecision(req.Amount) {
		return nil, domain.ErrInvalidAmountPrecision
	}
	amount := utils.RoundCents(req.Amount)

	order, err := s.repo.ReadOrder(ctx, req.OrderID)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if order == nil {
		order = &domain.Order{
			ID:           req.OrderID,
			Status:       domain.OrderStatusPending,
			CustomerName: req.Customer.Name,
			CardLast4:    utils.CardLast4(req.Card.Number),
			Amount:       amount,
			CreatedAt:    time.Now(),
		}
		order, err = s.repo.CreateOrder(ctx, order)
		if err != nil {
			s.logger.Error("Create order", zap.Error(err))
			return nil, domain.ErrInternal
		}
	}

	outcome, err := s.provider.Authorize(ctx, &port.ProviderRequest{
		OrderID:    order.ID,
		CardNumber: req.Card.Number,
		CardMonth:  req.Card.Month,
		CardYear:   req.Card.Year,
		CVV:        req.Card.CVV,
		Amount:     amount,
	})
	if err != nil {
		// Still recorded below so the order carries an auditable trail.
		s.logger.Error("Provider call failed", zap.String("order", order.ID), zap.Error(err))
		outcome = domain.AuthOutcomeServerError
	}

	auth := &domain.Authorization{
		OrderID:   order.ID,
		Token:     utils.AuthToken(order.ID),
		Amount:    amount,
		Outcome:   outcome,
		CreatedAt: time.Now(),
	}
	if _, err := s.repo.ReplaceAuthorization(ctx, auth); err != nil {
		s.logger.Error("Replace authorization", zap.Error(err))
		return nil, domain.ErrInternal
	}

	status := domain.OrderStatusError
	if outcome == domain.AuthOutcomeSuccess {
		status = domain.OrderStatusAuthorized
	}
	if err := s.repo.UpdateOrderStatus(ctx, order.ID, status); err != nil {
		s.logger.Error("Update order status", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return &domain.AuthorizationResult{
		Status:     authorizationStatus(outcome),
		Code:       outcome,
		Token:      auth.Token,
		MaskedCard: utils.MaskCard(req.Card.Number),
		Amount:     amount,
	}, nil
}

func authorizationStatus(outcome domain.AuthOutcome) domain.AuthorizationStatus {
	switch outcome {
	case domain.AuthOutcomeSuccess:
		return domain.AuthorizationStatusAuthorized
	case domain.AuthOutcomeInsufficientFunds, domain.AuthOutcomeIncorrectDetails:
		return domain.AuthorizationStatusDeclined
	default:
		return domain.AuthorizationStatusError
	}
}

// Settle validates a capture against the authorized amount and prior
// settlements, appends it and moves the order status, all in one transaction.
// Validation order is fixed: structural checks, then business checks, then the
// exceeds-available check, so callers get deterministic error codes.
func (s *Service) Settle(ctx context.Context, orderID string, amount decimal.Decimal) (*domain.SettlementResult, error) {
	if orderID == "" {
		return nil, domain.ErrBadRequest
	}
	if !amount.IsPos() {
		return nil, domain.ErrInvalidAmount
	}
	if !utils.HasCentPrecision(amount) {
		return nil, domain.ErrInvalidAmountPrecision
	}
	amount = utils.RoundCents(amount)

	var result domain.SettlementResult

	_, err := s.repo.SettleOrder(ctx, orderID,
		func(order *domain.Order, auth *domain.Authorization, settled decimal.Decimal) (*domain.Settlement, domain.OrderStatus, error) {
			if auth == nil || auth.Outcome != domain.AuthOutcomeSuccess {
				return nil, "", domain.ErrNoApprovedAuth
			}

			available, err := auth.Amount.Sub(settled)
			if err != nil {
				return nil, "", domain.ErrInternal
			}
			available = utils.RoundCents(available)

			if amount.Cmp(available) > 0 {
				return nil, "", &domain.ExceedsAvailableError{Available: available}
			}

			remaining, err := available.Sub(amount)
			if err != nil {
				return nil, "", domain.ErrInternal
			}
			remaining = utils.RoundCents(remaining)

			status := domain.OrderStatusAuthorized
			if remaining.IsZero() {
				status = domain.OrderStatusSettled
			}

			result.OrderStatus = status
			result.AvailableToSettle = remaining

			return &domain.Settlement{
				OrderID:   order.ID,
				Amount:    amount,
				Outcome:   domain.SettlementOutcomeSuccess,
				CreatedAt: time.Now(),
			}, status, nil
		})
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		if errors.Is(err, domain.ErrNoApprovedAuth) || errors.Is(err, domain.ErrAmountExceedsAvailable) {
			return nil, err
		}
		s.logger.Error("Settle order", zap.String("order", orderID), zap.Error(err))
		return nil, err
	}

	return &result, nil
}

// GetOrderDetails returns the order with its current authorization, settlement
// history and the amount still available to settle.
func (s *Service) GetOrderDetails(ctx context.Context, orderID string) (*domain.OrderDetails, error) {
	if orderID == "" {
		return nil, domain.ErrBadRequest
	}

	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	auth, err := s.repo.ReadAuthorization(ctx, orderID)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Read authorization", zap.Error(err))
		return nil, domain.ErrInternal
	}

	settlements, err := s.repo.ListSettlementsByOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("List settlements", zap.Error(err))
		return nil, domain.ErrInternal
	}

	available := decimal.Zero
	if auth != nil && auth.Outcome == domain.AuthOutcomeSuccess {
		available = auth.Amount
		for _, st := range settlements {
			if st.Outcome != domain.SettlementOutcomeSuccess {
				continue
			}
			available, err = available.Sub(st.Amount)
			if err != nil {
				return nil, domain.ErrInternal
			}
			available = utils.RoundCents(available)
		}
	}

	return &domain.OrderDetails{
		Order:             order,
		Authorization:     auth,
		Settlements:       settlements,
		AvailableToSettle: available,
	}, nil
}

func (s *Service) ListOrders(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	list, err := s.repo.ListOrders(ctx, status)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}
