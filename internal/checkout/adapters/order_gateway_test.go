package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/checkout/domain"
	"storefront/internal/checkout/ports"
	"storefront/pkg/backend"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/logger"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *BackendOrderGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewBackendOrderGateway(backend.NewClient(backend.Config{
		BaseURL: server.URL,
		Timeout: time.Second,
	}, logger.NewNop()))
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

var coupon = &domain.CouponSnapshot{ID: "c-20", Code: "SAVE20", DiscountAmount: decimal.NewFromInt(200)}

func TestCreateOrder_Request(t *testing.T) {
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/create-order", r.URL.Path)
		assert.Equal(t, "attempt-1", r.Header.Get(backend.IdempotencyKeyHeader))

		body := decodeBody(t, r)
		assert.Equal(t, 800.0, body["amount"])
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, "SAVE20", body["couponCode"])
		assert.Equal(t, "c-20", body["couponId"])
		assert.Equal(t, 200.0, body["discountAmount"])

		_, _ = w.Write([]byte(`{"id":"order_gw_9","amount":80000,"currency":"INR"}`))
	})

	order, err := gateway.CreateOrder(context.Background(), ports.CreateOrderRequest{
		AttemptID: "attempt-1",
		Amount:    decimal.NewFromInt(800),
		Currency:  "INR",
		Coupon:    coupon,
	})

	require.NoError(t, err)
	assert.Equal(t, "order_gw_9", order.ID)
	assert.Equal(t, int64(80000), order.Amount)
}

func TestCreateOrder_WithoutCouponOmitsMetadata(t *testing.T) {
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.NotContains(t, body, "couponCode")
		assert.NotContains(t, body, "discountAmount")
		_, _ = w.Write([]byte(`{"id":"order_gw_9","amount":100,"currency":"INR"}`))
	})

	_, err := gateway.CreateOrder(context.Background(), ports.CreateOrderRequest{
		AttemptID: "attempt-1",
		Amount:    decimal.NewFromInt(1),
		Currency:  "INR",
	})

	assert.NoError(t, err)
}

func TestCreateOrder_Rejected(t *testing.T) {
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Amount too low"}`))
	})

	_, err := gateway.CreateOrder(context.Background(), ports.CreateOrderRequest{AttemptID: "a", Amount: decimal.NewFromInt(1), Currency: "INR"})

	rejection, ok := ports.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "Amount too low", rejection.Message)
}

func TestVerifyPayment_SendsBothSpellings(t *testing.T) {
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/verify", r.URL.Path)

		body := decodeBody(t, r)
		assert.Equal(t, "order_gw_1", body["razorpay_order_id"])
		assert.Equal(t, "pay_1", body["razorpay_payment_id"])
		assert.Equal(t, "sig_1", body["razorpay_signature"])
		assert.Equal(t, "order_gw_1", body["razorpayOrderId"])
		assert.Equal(t, "pay_1", body["razorpayPaymentId"])
		assert.Equal(t, "sig_1", body["razorpaySignature"])
		assert.Equal(t, "addr-1", body["shippingAddressId"])
		assert.Equal(t, true, body["billingAddressSameAsShipping"])
		assert.Equal(t, "SAVE20", body["couponCode"])
		assert.Equal(t, map[string]interface{}{"gift": "yes"}, body["notes"])

		_, _ = w.Write([]byte(`{"orderId":"o-1","orderNumber":"ORD-1001"}`))
	})

	order, err := gateway.VerifyPayment(context.Background(), ports.VerifyPaymentRequest{
		AttemptID:         "attempt-1",
		GatewayOrderID:    "order_gw_1",
		PaymentID:         "pay_1",
		Signature:         "sig_1",
		ShippingAddressID: "addr-1",
		Coupon:            coupon,
		Notes:             map[string]string{"gift": "yes"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", order.OrderNumber)
}

func TestVerifyPayment_CancelledCode(t *testing.T) {
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Order was previously cancelled","code":"ORDER_CANCELLED"}`))
	})

	_, err := gateway.VerifyPayment(context.Background(), ports.VerifyPaymentRequest{AttemptID: "a"})

	rejection, ok := ports.AsRejection(err)
	require.True(t, ok)
	assert.True(t, domain.IsCancellation(rejection.Code, rejection.Message))
}

func TestVerifyPayment_MissingOrderIDIsRejected(t *testing.T) {
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orderNumber":""}`))
	})

	order, err := gateway.VerifyPayment(context.Background(), ports.VerifyPaymentRequest{
		AttemptID:      "a",
		GatewayOrderID: "order_1",
		PaymentID:      "pay_1",
		Signature:      "sig",
	})

	assert.Nil(t, order)
	_, ok := ports.AsRejection(err)
	assert.True(t, ok, "got %v", err)
}

func TestCreateOrder_OpenBreakerIsUnavailable(t *testing.T) {
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	req := ports.CreateOrderRequest{AttemptID: "a", Amount: decimal.NewFromInt(100), Currency: "INR"}
	for i := 0; i < 5; i++ {
		_, err := gateway.CreateOrder(context.Background(), req)
		require.Error(t, err)
	}

	_, err := gateway.CreateOrder(context.Background(), req)

	_, isRejection := ports.AsRejection(err)
	assert.False(t, isRejection)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnavailable), "got %v", err)
}
