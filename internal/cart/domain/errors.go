package domain

import "storefront/pkg/errors"

// Domain-specific errors
var (
	ErrSessionRequired    = errors.NewValidation("session is required", nil)
	ErrVariantRequired    = errors.NewValidation("product variant is required", nil)
	ErrInvalidQuantity    = errors.NewValidation("quantity must be at least 1", nil)
	ErrInvalidPrice       = errors.NewValidation("unit price must be greater than 0", nil)
	ErrCouponCodeRequired = errors.NewValidation("coupon code is required", nil)
	ErrEmptyCart          = errors.NewValidation("cart is empty", nil)
	ErrCartNotFound       = errors.NewNotFound("cart", "unknown")
	ErrCartModified       = errors.NewConflict("cart was modified by another request, please retry")
)

// NewItemNotFound creates a not found error with the line item ID
func NewItemNotFound(id string) error {
	return errors.NewNotFound("cart item", id)
}

// NewInsufficientStock reports a quantity above the variant's stock
func NewInsufficientStock(variantID string, available int) error {
	return errors.NewValidation("requested quantity exceeds available stock", map[string]interface{}{
		"variant_id": variantID,
		"available":  available,
	})
}
