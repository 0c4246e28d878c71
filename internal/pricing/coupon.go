// Package pricing computes cart totals and coupon discounts.
//
// Everything in this package is pure: callers pass the cart lines and the
// applied coupon as values and get a Totals breakdown back. Persistence and
// memoization live in the cart adapters.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront/pkg/errors"
)

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage takes a percentage of the subtotal.
	DiscountPercentage DiscountType = "PERCENTAGE"
	// DiscountFixed takes a fixed amount off the subtotal.
	DiscountFixed DiscountType = "FIXED"
)

var (
	// MaxDiscountRatio is the largest share of the subtotal a coupon may take.
	MaxDiscountRatio = decimal.RequireFromString("0.90")

	hundred = decimal.NewFromInt(100)
)

// ErrUnknownDiscountType is returned when a coupon carries a type we can't price.
var ErrUnknownDiscountType = errors.NewValidation("unknown discount type", nil)

// ParseDiscountType normalizes a discount type coming from the backend.
func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(strings.ToUpper(strings.TrimSpace(s))) {
	case DiscountPercentage:
		return DiscountPercentage, nil
	case DiscountFixed:
		return DiscountFixed, nil
	default:
		return "", ErrUnknownDiscountType
	}
}

// CouponTerms is the part of a coupon that affects pricing.
type CouponTerms struct {
	Type  DiscountType
	Value decimal.Decimal
}

// ComputeDiscount returns the discount a coupon yields on subtotal.
//
// The result never exceeds MaxDiscountRatio of the subtotal. Over-large
// coupons are clamped silently; use DiscountCapped to tell the shopper.
// A nil coupon yields zero.
func ComputeDiscount(subtotal decimal.Decimal, coupon *CouponTerms) decimal.Decimal {
	discount, _ := computeDiscount(subtotal, coupon)
	return discount
}

// DiscountCapped reports whether ComputeDiscount had to clamp the coupon.
func DiscountCapped(subtotal decimal.Decimal, coupon *CouponTerms) bool {
	_, capped := computeDiscount(subtotal, coupon)
	return capped
}

func computeDiscount(subtotal decimal.Decimal, coupon *CouponTerms) (decimal.Decimal, bool) {
	if coupon == nil || !subtotal.IsPositive() {
		return decimal.Zero, false
	}

	var raw decimal.Decimal
	switch coupon.Type {
	case DiscountPercentage:
		raw = subtotal.Mul(coupon.Value).Div(hundred)
	case DiscountFixed:
		raw = coupon.Value
	default:
		return decimal.Zero, false
	}
	if raw.IsNegative() {
		return decimal.Zero, false
	}
	raw = raw.Round(2)

	// Truncating keeps the cap at or below 90% after rounding to paise.
	maxDiscount := subtotal.Mul(MaxDiscountRatio).Truncate(2)
	if raw.GreaterThan(maxDiscount) {
		return maxDiscount, true
	}
	return raw, false
}
