package pricing

import "github.com/shopspring/decimal"

// MinimumCharge is the smallest amount the payment gateway accepts.
var MinimumCharge = decimal.NewFromInt(1)

// LineAmount is the priced view of a cart line.
type LineAmount struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity × unit price.
func (l LineAmount) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is the price breakdown of a cart.
type Totals struct {
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Shipping       decimal.Decimal
	Total          decimal.Decimal
	DiscountCapped bool
}

// GetCartTotals sums the lines and applies the coupon.
// Shipping is always free.
func GetCartTotals(lines []LineAmount, coupon *CouponTerms) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
	}

	discount, capped := computeDiscount(subtotal, coupon)

	return Totals{
		Subtotal:       subtotal,
		Discount:       discount,
		Shipping:       decimal.Zero,
		Total:          subtotal.Sub(discount),
		DiscountCapped: capped,
	}
}

// Chargeable returns the amount to send to the payment gateway for total.
// Totals below MinimumCharge are raised to it and adjusted is true; the
// shopper must be told before the charge is initiated.
func Chargeable(total decimal.Decimal) (amount decimal.Decimal, adjusted bool) {
	amount = total.Round(2)
	if amount.LessThan(MinimumCharge) {
		return MinimumCharge, true
	}
	return amount, false
}

// ToMinorUnits converts a major-unit amount (rupees) to minor units (paise).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
