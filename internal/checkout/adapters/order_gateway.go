package adapters

import (
	"context"

	"storefront/internal/checkout/ports"
	"storefront/pkg/backend"
)

// BackendOrderGateway implements OrderGateway against the commerce
// backend's payment endpoints
type BackendOrderGateway struct {
	client *backend.Client
}

// NewBackendOrderGateway creates a new order gateway
func NewBackendOrderGateway(client *backend.Client) *BackendOrderGateway {
	return &BackendOrderGateway{client: client}
}

type createOrderRequest struct {
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
	CouponCode     string   `json:"couponCode,omitempty"`
	CouponID       string   `json:"couponId,omitempty"`
	DiscountAmount *float64 `json:"discountAmount,omitempty"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder opens a gateway order for the chargeable amount. The attempt
// id travels as the Idempotency-Key.
func (g *BackendOrderGateway) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (*ports.GatewayOrder, error) {
	body := createOrderRequest{
		Amount:   req.Amount.InexactFloat64(),
		Currency: req.Currency,
	}
	if req.Coupon != nil {
		discount := req.Coupon.DiscountAmount.InexactFloat64()
		body.CouponCode = req.Coupon.Code
		body.CouponID = req.Coupon.ID
		body.DiscountAmount = &discount
	}

	var resp createOrderResponse
	if err := g.client.Post(ctx, "/payments/create-order", body, &resp, backend.WithIdempotencyKey(req.AttemptID)); err != nil {
		return nil, asRejection(err)
	}
	if resp.ID == "" {
		return nil, &ports.Rejection{}
	}

	return &ports.GatewayOrder{
		ID:       resp.ID,
		Amount:   resp.Amount,
		Currency: resp.Currency,
	}, nil
}

// verifyPaymentRequest carries the gateway fields in both spellings the
// backend has accepted over time
type verifyPaymentRequest struct {
	RazorpayOrderIDSnake         string            `json:"razorpay_order_id"`
	RazorpayPaymentIDSnake       string            `json:"razorpay_payment_id"`
	RazorpaySignatureSnake       string            `json:"razorpay_signature"`
	RazorpayOrderID              string            `json:"razorpayOrderId"`
	RazorpayPaymentID            string            `json:"razorpayPaymentId"`
	RazorpaySignature            string            `json:"razorpaySignature"`
	ShippingAddressID            string            `json:"shippingAddressId"`
	BillingAddressSameAsShipping bool              `json:"billingAddressSameAsShipping"`
	CouponCode                   string            `json:"couponCode,omitempty"`
	CouponID                     string            `json:"couponId,omitempty"`
	DiscountAmount               *float64          `json:"discountAmount,omitempty"`
	Notes                        map[string]string `json:"notes"`
}

type verifyPaymentResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// VerifyPayment asks the backend to verify the widget callback and place
// the order
func (g *BackendOrderGateway) VerifyPayment(ctx context.Context, req ports.VerifyPaymentRequest) (*ports.PlacedOrder, error) {
	notes := req.Notes
	if notes == nil {
		notes = map[string]string{}
	}
	body := verifyPaymentRequest{
		RazorpayOrderIDSnake:         req.GatewayOrderID,
		RazorpayPaymentIDSnake:       req.PaymentID,
		RazorpaySignatureSnake:       req.Signature,
		RazorpayOrderID:              req.GatewayOrderID,
		RazorpayPaymentID:            req.PaymentID,
		RazorpaySignature:            req.Signature,
		ShippingAddressID:            req.ShippingAddressID,
		BillingAddressSameAsShipping: true,
		Notes:                        notes,
	}
	if req.Coupon != nil {
		discount := req.Coupon.DiscountAmount.InexactFloat64()
		body.CouponCode = req.Coupon.Code
		body.CouponID = req.Coupon.ID
		body.DiscountAmount = &discount
	}

	var resp verifyPaymentResponse
	if err := g.client.Post(ctx, "/payments/verify", body, &resp, backend.WithIdempotencyKey(req.AttemptID)); err != nil {
		return nil, asRejection(err)
	}
	if resp.OrderID == "" {
		return nil, &ports.Rejection{}
	}

	return &ports.PlacedOrder{
		OrderID:     resp.OrderID,
		OrderNumber: resp.OrderNumber,
	}, nil
}

// asRejection keeps the backend's explanation; transport failures pass
// through unchanged
func asRejection(err error) error {
	be, ok := backend.AsError(err)
	if !ok {
		return err
	}
	return &ports.Rejection{Code: be.Code, Message: be.Message}
}
