package helpers

import (
	"math/rand"
	"strings"
)

const (
	couponCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	couponCodeLength   = 12
)

// GenerateCouponCode produces a candidate 12-character code over A-Z0-9.
// Uniqueness is the caller's concern: the creation flow rechecks the
// store and regenerates on collision. The loop is unbounded, but with a
// 36^12 key space a collision streak long enough to matter does not
// happen in practice.
func GenerateCouponCode() string {
	var sb strings.Builder
	sb.Grow(couponCodeLength)
	for i := 0; i < couponCodeLength; i++ {
		sb.WriteByte(couponCodeAlphabet[rand.Intn(len(couponCodeAlphabet))])
	}
	return sb.String()
}

// OnlyDigits strips every non-digit rune, normalizing formatted CPF,
// CNPJ, zip and phone inputs before validation.
func OnlyDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
