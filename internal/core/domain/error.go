package domain

import (
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidAccessKey           = errors.New("invalid operator access key")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")

	// * Business errors.
	ErrInvalidAmount          = errors.New("amount must be a positive number")
	ErrInvalidAmountPrecision = errors.New("amount has more than two decimal digits")
	ErrOrderNotFound          = errors.New("order not found")
	ErrNoApprovedAuth         = errors.New("order has no approved authorization")
	ErrAmountExceedsAvailable = errors.New("amount exceeds available to settle")
)

// ExceedsAvailableError rejects a settlement and carries the amount the
// caller may still settle, so the client can display it without another read.
type ExceedsAvailableError struct {
	Available decimal.Decimal
}

func (e *ExceedsAvailableError) Error() string {
	return fmt.Sprintf("amount exceeds available to settle (%s left)", e.Available)
}

func (e *ExceedsAvailableError) Unwrap() error {
	return ErrAmountExceedsAvailable
}
