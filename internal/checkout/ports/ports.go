package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"storefront/internal/checkout/domain"
	"storefront/internal/pricing"
)

// AttemptRepository defines the interface for checkout attempt persistence
type AttemptRepository interface {
	Create(ctx context.Context, attempt *domain.Attempt) error
	Get(ctx context.Context, id string) (*domain.Attempt, error)

	// Update stores attempt only if the stored row is still at
	// (expectedState, expectedToken); otherwise domain.ErrAttemptModified
	Update(ctx context.Context, attempt *domain.Attempt, expectedState domain.State, expectedToken int64) error

	// HasInFlight reports whether the session has an attempt creating an
	// order that was updated within domain.InFlightWindow
	HasInFlight(ctx context.Context, sessionID string) (bool, error)
}

// CartSnapshot is the priced cart a checkout starts from
type CartSnapshot struct {
	SessionID  string
	Version    int64
	ItemCount  int
	Totals     pricing.Totals
	CouponID   string
	CouponCode string
}

// IsEmpty reports whether there is nothing to check out
func (s *CartSnapshot) IsEmpty() bool {
	return s.ItemCount == 0
}

// CartService is the checkout's view of the cart module
type CartService interface {
	Snapshot(ctx context.Context, sessionID string) (*CartSnapshot, error)
	Clear(ctx context.Context, sessionID string) error
}

// CreateOrderRequest asks the backend to open a gateway order
type CreateOrderRequest struct {
	AttemptID string
	Amount    decimal.Decimal
	Currency  string
	Coupon    *domain.CouponSnapshot
}

// GatewayOrder is the gateway order the widget pays into
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// VerifyPaymentRequest carries the widget callback to the backend
type VerifyPaymentRequest struct {
	AttemptID         string
	GatewayOrderID    string
	PaymentID         string
	Signature         string
	ShippingAddressID string
	Coupon            *domain.CouponSnapshot
	Notes             map[string]string
}

// PlacedOrder is the order the backend created after verification
type PlacedOrder struct {
	OrderID     string
	OrderNumber string
}

// OrderGateway is the commerce backend's payment API
type OrderGateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*GatewayOrder, error)
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*PlacedOrder, error)
}

// Rejection is a failure the backend explained. Message is safe to show
// to the shopper.
type Rejection struct {
	Code    string
	Message string
}

func (r *Rejection) Error() string {
	if r.Code != "" {
		return r.Code + ": " + r.Message
	}
	return r.Message
}

// AsRejection extracts a backend rejection from err
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// EventPublisher defines the interface for publishing checkout events
type EventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, attempt *domain.Attempt) error
	PublishCheckoutFailed(ctx context.Context, attempt *domain.Attempt) error
}
