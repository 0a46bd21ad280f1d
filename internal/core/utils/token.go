package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// AuthToken derives the provider token recorded on an authorization.
// Deterministic per order, so a replaced authorization keeps the same token.
func AuthToken(orderID string) string {
	sum := sha256.Sum256([]byte(orderID))
	return "AUTH-" + strings.ToUpper(hex.EncodeToString(sum[:6]))
}
