package utils_test

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/mkarpelev/paymentgate/internal/core/utils"
	"github.com/stretchr/testify/assert"
)

func TestHasCentPrecision(t *testing.T) {
	tests := []struct {
		amount string
		exp    bool
	}{
		{amount: "10.00", exp: true},
		{amount: "10", exp: true},
		{amount: "10.5", exp: true},
		{amount: "10.005", exp: false},
		{amount: "0.001", exp: false},
		{amount: "99.99", exp: true},
	}

	for _, test := range tests {
		t.Run(test.amount, func(t *testing.T) {
			assert.Equal(t, test.exp, utils.HasCentPrecision(decimal.MustParse(test.amount)))
		})
	}
}

func TestHasCentPrecisionFromFloat(t *testing.T) {
	bad, err := decimal.NewFromFloat64(10.005)
	assert.NoError(t, err)
	assert.False(t, utils.HasCentPrecision(bad))

	good, err := decimal.NewFromFloat64(10.00)
	assert.NoError(t, err)
	assert.True(t, utils.HasCentPrecision(good))
}

func TestWithinTolerance(t *testing.T) {
	a := decimal.MustParse("100.00")
	b := decimal.MustParse("100.0000000000009")
	assert.True(t, utils.WithinTolerance(a, b))
	assert.True(t, utils.WithinTolerance(b, a))

	c := decimal.MustParse("100.01")
	assert.False(t, utils.WithinTolerance(a, c))
}

func TestExceedsByTolerance(t *testing.T) {
	authorized := decimal.MustParse("100.00")

	assert.False(t, utils.ExceedsByTolerance(decimal.MustParse("100.00"), authorized))
	assert.False(t, utils.ExceedsByTolerance(decimal.MustParse("100.0000000000009"), authorized))
	assert.True(t, utils.ExceedsByTolerance(decimal.MustParse("100.01"), authorized))
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, "10.01", utils.RoundCents(decimal.MustParse("10.006")).String())
	assert.Equal(t, "10.00", utils.RoundCents(decimal.MustParse("10.004")).String())
	assert.Equal(t, "10.00", utils.RoundCents(decimal.MustParse("10.00")).String())
}
