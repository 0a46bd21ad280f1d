package utils

import "github.com/govalues/decimal"

// auditTolerance absorbs float rounding drift in data written out-of-band.
var auditTolerance = decimal.MustParse("0.000000001")

// RoundCents rounds to 2 decimal digits. Every stored and returned monetary
// value goes through this after each arithmetic step.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// HasCentPrecision reports whether d carries at most 2 decimal digits.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Cmp(d.Round(2)) == 0
}

// WithinTolerance reports |a-b| <= 1e-9.
func WithinTolerance(a, b decimal.Decimal) bool {
	diff, err := a.Sub(b)
	if err != nil {
		return false
	}
	return diff.Abs().Cmp(auditTolerance) <= 0
}

// ExceedsByTolerance reports a > b beyond the audit tolerance.
func ExceedsByTolerance(a, b decimal.Decimal) bool {
	return a.Cmp(b) > 0 && !WithinTolerance(a, b)
}
