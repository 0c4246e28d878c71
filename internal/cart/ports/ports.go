package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"storefront/internal/cart/domain"
)

// ErrCacheMiss is returned by CartCache when nothing is cached for a session
var ErrCacheMiss = errors.New("cache miss")

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// Get retrieves the cart of a session; domain.ErrCartNotFound when none
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save stores the cart if the stored version still equals expectedVersion.
	// expectedVersion 0 means the cart must not exist yet.
	// Returns domain.ErrCartModified on a lost race.
	Save(ctx context.Context, cart *domain.Cart, expectedVersion int64) error

	// Delete removes the cart of a session
	Delete(ctx context.Context, sessionID string) error
}

// CartCache is a read-through cache in front of CartRepository
type CartCache interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Set caches cart unless an equal or newer version was invalidated
	// after it was read. A refused write is not an error.
	Set(ctx context.Context, cart *domain.Cart) error

	// Invalidate drops the cached cart after version was saved
	Invalidate(ctx context.Context, sessionID string, version int64) error
}

// CouponClient validates a coupon code against the backend
type CouponClient interface {
	// Apply asks the backend whether code is valid for a cart of cartTotal
	// and returns the coupon's terms
	Apply(ctx context.Context, code string, cartTotal decimal.Decimal) (*domain.Coupon, error)
}
