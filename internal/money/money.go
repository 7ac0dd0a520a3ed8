// Package money provides exact-decimal helpers for invoice arithmetic.
//
// Every monetary quantity in this repository is a shopspring decimal; the
// rounding law is round-half-up at two decimal places, applied through
// Round2 so it lives in exactly one place.
package money

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Two decimal places, the paisa resolution of every persisted amount.
const places = 2

// Round2 rounds to 2 decimal places, half up.
// Decimal.Round is round-half-away-from-zero, which coincides with
// round-half-up on the non-negative amounts this system deals in.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(places)
}

// FromString parses a decimal from its string form.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// ParseAmount parses a platform money string, treating empty as zero.
// Shopify money sets serialize amounts as decimal strings.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return Zero, nil
	}
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from string, panics on error.
// Reserved for constants in code and for tests.
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// LineTotal computes round(unitPrice*qty, 2) - discount, rounded again to
// 2 places. Both the pre-discount and post-discount amounts are persisted
// on the invoice line, so both are rounded before use.
func LineTotal(unitPrice, qty, discount decimal.Decimal) (before, total decimal.Decimal) {
	before = Round2(unitPrice.Mul(qty))
	total = Round2(before.Sub(discount))
	return before, total
}

// Sum adds a slice of decimals exactly, without intermediate rounding.
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsPositive returns true if d is greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}
