package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/pricing"
)

// ProductVariant is a read-only snapshot of the variant taken when the
// shopper added it to the cart.
type ProductVariant struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	VariantID     string `json:"variant_id"`
	Flavor        string `json:"flavor,omitempty"`
	Weight        string `json:"weight,omitempty"`
	StockQuantity int    `json:"stock_quantity"`
}

// LineItem is one variant in the cart
type LineItem struct {
	ID        string          `json:"id"`
	Variant   ProductVariant  `json:"variant"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	AddedAt   time.Time       `json:"added_at"`
}

// Subtotal returns quantity × unit price
func (l LineItem) Subtotal() decimal.Decimal {
	return l.amount().Subtotal()
}

func (l LineItem) amount() pricing.LineAmount {
	return pricing.LineAmount{Quantity: l.Quantity, UnitPrice: l.UnitPrice}
}

// Coupon is a coupon the backend accepted for this cart
type Coupon struct {
	ID            string               `json:"id"`
	Code          string               `json:"code"`
	DiscountType  pricing.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal      `json:"discount_value"`
}

// Terms returns the pricing view of the coupon; nil-safe
func (c *Coupon) Terms() *pricing.CouponTerms {
	if c == nil {
		return nil
	}
	return &pricing.CouponTerms{Type: c.DiscountType, Value: c.DiscountValue}
}

// NormalizeCouponCode upper-cases and trims a code typed by the shopper
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Cart is the shopper's cart, keyed by session.
// Version increases on every change to items or coupon.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	Coupon    *Coupon    `json:"coupon,omitempty"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a session
func NewCart(sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	now := time.Now()
	return &Cart{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TotalQuantity is the number of units across all lines
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Totals prices the cart with its applied coupon
func (c *Cart) Totals() pricing.Totals {
	lines := make([]pricing.LineAmount, len(c.Items))
	for i, item := range c.Items {
		lines[i] = item.amount()
	}
	return pricing.GetCartTotals(lines, c.Coupon.Terms())
}

// AddItem adds quantity units of a variant. Adding a variant that is
// already in the cart increases that line instead of adding a new one.
func (c *Cart) AddItem(variant ProductVariant, unitPrice decimal.Decimal, quantity int) (*LineItem, error) {
	if variant.VariantID == "" {
		return nil, ErrVariantRequired
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if !unitPrice.IsPositive() {
		return nil, ErrInvalidPrice
	}

	for i := range c.Items {
		item := &c.Items[i]
		if item.Variant.VariantID != variant.VariantID {
			continue
		}
		if err := checkStock(variant, item.Quantity+quantity); err != nil {
			return nil, err
		}
		item.Quantity += quantity
		item.Variant = variant
		item.UnitPrice = unitPrice
		c.touch()
		return item, nil
	}

	if err := checkStock(variant, quantity); err != nil {
		return nil, err
	}
	c.Items = append(c.Items, LineItem{
		ID:        uuid.New().String(),
		Variant:   variant,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		AddedAt:   time.Now(),
	})
	c.touch()
	return &c.Items[len(c.Items)-1], nil
}

// UpdateQuantity sets the quantity of a line. Use RemoveItem to drop it.
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i := c.indexOf(itemID)
	if i < 0 {
		return NewItemNotFound(itemID)
	}
	if err := checkStock(c.Items[i].Variant, quantity); err != nil {
		return err
	}
	c.Items[i].Quantity = quantity
	c.touch()
	return nil
}

// RemoveItem drops a line
func (c *Cart) RemoveItem(itemID string) error {
	i := c.indexOf(itemID)
	if i < 0 {
		return NewItemNotFound(itemID)
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.touch()
	return nil
}

// ApplyCoupon replaces any previously applied coupon
func (c *Cart) ApplyCoupon(coupon Coupon) {
	coupon.Code = NormalizeCouponCode(coupon.Code)
	c.Coupon = &coupon
	c.touch()
}

// RemoveCoupon drops the applied coupon, if any
func (c *Cart) RemoveCoupon() {
	if c.Coupon == nil {
		return
	}
	c.Coupon = nil
	c.touch()
}

// Clear empties the cart and drops the coupon
func (c *Cart) Clear() {
	c.Items = nil
	c.Coupon = nil
	c.touch()
}

func (c *Cart) indexOf(itemID string) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.Version++
	c.UpdatedAt = time.Now()
}

// checkStock only applies when the snapshot knows the stock level
func checkStock(variant ProductVariant, quantity int) error {
	if variant.StockQuantity > 0 && quantity > variant.StockQuantity {
		return NewInsufficientStock(variant.VariantID, variant.StockQuantity)
	}
	return nil
}
