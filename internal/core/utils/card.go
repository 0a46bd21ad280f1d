package utils

import (
	"strconv"
	"strings"

	"github.com/mkarpelev/paymentgate/internal/core/domain"
	luhn "github.com/phedde/luhn-algorithm"
)

// CardDigits strips everything but digits from a card number.
func CardDigits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CardLast4 returns the masked suffix stored on the order.
func CardLast4(number string) string {
	digits := CardDigits(number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// MaskCard renders a card number the way the checkout confirmation shows it.
func MaskCard(number string) string {
	return "**** **** **** " + CardLast4(number)
}

// ValidateCard checks length and Luhn checksum of a card number.
func ValidateCard(number string) error {
	digits := CardDigits(number)
	if len(digits) < 12 || len(digits) > 19 {
		return domain.ErrBadRequest
	}
	num, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return domain.ErrBadRequest
	}
	if !luhn.IsValid(num) {
		return domain.ErrBadRequest
	}
	return nil
}
