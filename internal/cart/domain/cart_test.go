package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/pricing"
	"storefront/pkg/errors"
)

func whey() ProductVariant {
	return ProductVariant{
		ProductID:     "p-1",
		ProductName:   "Whey Protein",
		VariantID:     "v-choc-1kg",
		Flavor:        "Chocolate",
		Weight:        "1kg",
		StockQuantity: 5,
	}
}

func newCart(t *testing.T) *Cart {
	t.Helper()
	cart, err := NewCart("session-1")
	require.NoError(t, err)
	return cart
}

func TestNewCart_RequiresSession(t *testing.T) {
	_, err := NewCart("")
	assert.ErrorIs(t, err, ErrSessionRequired)
}

func TestAddItem(t *testing.T) {
	cart := newCart(t)

	item, err := cart.AddItem(whey(), decimal.NewFromInt(250), 2)

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 2, cart.TotalQuantity())
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(500)))
	assert.Equal(t, int64(1), cart.Version)
}

func TestAddItem_MergesSameVariant(t *testing.T) {
	cart := newCart(t)
	first, err := cart.AddItem(whey(), decimal.NewFromInt(250), 1)
	require.NoError(t, err)
	firstID := first.ID

	second, err := cart.AddItem(whey(), decimal.NewFromInt(250), 2)

	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, firstID, second.ID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItem_Validation(t *testing.T) {
	tests := []struct {
		name     string
		variant  ProductVariant
		price    decimal.Decimal
		quantity int
	}{
		{name: "missing variant", variant: ProductVariant{}, price: decimal.NewFromInt(1), quantity: 1},
		{name: "zero quantity", variant: whey(), price: decimal.NewFromInt(1), quantity: 0},
		{name: "zero price", variant: whey(), price: decimal.Zero, quantity: 1},
		{name: "above stock", variant: whey(), price: decimal.NewFromInt(1), quantity: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := newCart(t)

			_, err := cart.AddItem(tt.variant, tt.price, tt.quantity)

			assert.True(t, errors.Is(err, errors.CodeValidation), "got %v", err)
			assert.True(t, cart.IsEmpty())
			assert.Equal(t, int64(0), cart.Version)
		})
	}
}

func TestAddItem_UnknownStockIsUnbounded(t *testing.T) {
	cart := newCart(t)
	variant := whey()
	variant.StockQuantity = 0

	_, err := cart.AddItem(variant, decimal.NewFromInt(10), 50)

	assert.NoError(t, err)
}

func TestUpdateQuantity(t *testing.T) {
	cart := newCart(t)
	item, _ := cart.AddItem(whey(), decimal.NewFromInt(250), 1)
	id := item.ID

	require.NoError(t, cart.UpdateQuantity(id, 4))
	assert.Equal(t, 4, cart.TotalQuantity())

	assert.ErrorIs(t, cart.UpdateQuantity(id, 0), ErrInvalidQuantity)
	assert.True(t, errors.Is(cart.UpdateQuantity(id, 9), errors.CodeValidation))
	assert.True(t, errors.Is(cart.UpdateQuantity("missing", 1), errors.CodeNotFound))
}

func TestRemoveItem(t *testing.T) {
	cart := newCart(t)
	item, _ := cart.AddItem(whey(), decimal.NewFromInt(250), 1)
	id := item.ID

	require.NoError(t, cart.RemoveItem(id))
	assert.True(t, cart.IsEmpty())
	assert.True(t, errors.Is(cart.RemoveItem(id), errors.CodeNotFound))
}

func TestCoupon_ReplaceAndRemove(t *testing.T) {
	cart := newCart(t)
	_, _ = cart.AddItem(whey(), decimal.NewFromInt(500), 2)

	cart.ApplyCoupon(Coupon{ID: "c1", Code: " save10 ", DiscountType: pricing.DiscountPercentage, DiscountValue: decimal.NewFromInt(10)})
	assert.Equal(t, "SAVE10", cart.Coupon.Code)
	assert.True(t, cart.Totals().Discount.Equal(decimal.NewFromInt(100)))

	cart.ApplyCoupon(Coupon{ID: "c2", Code: "FLAT50", DiscountType: pricing.DiscountFixed, DiscountValue: decimal.NewFromInt(50)})
	assert.Equal(t, "c2", cart.Coupon.ID)
	assert.True(t, cart.Totals().Total.Equal(decimal.NewFromInt(950)))

	cart.RemoveCoupon()
	totals := cart.Totals()
	assert.Nil(t, cart.Coupon)
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(totals.Subtotal))
}

func TestRemoveCoupon_NoopKeepsVersion(t *testing.T) {
	cart := newCart(t)

	cart.RemoveCoupon()

	assert.Equal(t, int64(0), cart.Version)
}

func TestClear(t *testing.T) {
	cart := newCart(t)
	_, _ = cart.AddItem(whey(), decimal.NewFromInt(500), 2)
	cart.ApplyCoupon(Coupon{Code: "X", DiscountType: pricing.DiscountFixed, DiscountValue: decimal.NewFromInt(1)})
	before := cart.Version

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.Coupon)
	assert.Greater(t, cart.Version, before)
}
