package adapters

import (
	"context"

	cartapp "storefront/internal/cart/application"
	"storefront/internal/checkout/ports"
)

// LocalCartService implements CartService by calling the cart module in
// the same process
type LocalCartService struct {
	carts *cartapp.CartUseCase
}

// NewLocalCartService creates a new in-process cart service
func NewLocalCartService(carts *cartapp.CartUseCase) *LocalCartService {
	return &LocalCartService{carts: carts}
}

// Snapshot prices the session's stored cart. The cache is skipped because
// the result sets the charged amount.
func (s *LocalCartService) Snapshot(ctx context.Context, sessionID string) (*ports.CartSnapshot, error) {
	out, err := s.carts.GetStoredCart(ctx, cartapp.GetCartInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	snapshot := &ports.CartSnapshot{
		SessionID: out.Cart.SessionID,
		Version:   out.Cart.Version,
		ItemCount: out.Cart.TotalQuantity(),
		Totals:    out.Totals,
	}
	if c := out.Cart.Coupon; c != nil {
		snapshot.CouponID = c.ID
		snapshot.CouponCode = c.Code
	}
	return snapshot, nil
}

// Clear empties the session's cart
func (s *LocalCartService) Clear(ctx context.Context, sessionID string) error {
	_, err := s.carts.ClearCart(ctx, cartapp.ClearCartInput{SessionID: sessionID})
	return err
}
