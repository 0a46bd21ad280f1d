package utils_test

import (
	"testing"

	"github.com/mkarpelev/paymentgate/internal/core/utils"
	"github.com/stretchr/testify/assert"
)

func TestCardLast4(t *testing.T) {
	tests := []struct {
		name   string
		number string
		exp    string
	}{
		{name: "plain digits", number: "4242424242424242", exp: "4242"},
		{name: "spaced", number: "4242 4242 4242 4242", exp: "4242"},
		{name: "dashed", number: "5555-5555-5555-4444", exp: "4444"},
		{name: "short input", number: "12", exp: "12"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, utils.CardLast4(test.number))
		})
	}
}

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "**** **** **** 4242", utils.MaskCard("4242 4242 4242 4242"))
}

func TestValidateCard(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		wantErr bool
	}{
		{name: "valid visa", number: "4242 4242 4242 4242"},
		{name: "valid mastercard", number: "5555555555554444"},
		{name: "luhn failure", number: "4242424242424243", wantErr: true},
		{name: "too short", number: "42424242", wantErr: true},
		{name: "empty", number: "", wantErr: true},
		{name: "letters only", number: "not-a-card-number", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := utils.ValidateCard(test.number)
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthTokenDeterministic(t *testing.T) {
	assert.Equal(t, utils.AuthToken("ORD-1"), utils.AuthToken("ORD-1"))
	assert.NotEqual(t, utils.AuthToken("ORD-1"), utils.AuthToken("ORD-2"))
	assert.Contains(t, utils.AuthToken("ORD-1"), "AUTH-")
}
