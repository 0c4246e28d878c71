package events

import "time"

// Exchange names
const (
	ExchangeCheckout = "checkout.events"
)

// Routing keys
const (
	RoutingKeyOrderConfirmed = "order.confirmed"
	RoutingKeyCheckoutFailed = "checkout.failed"
)

// OrderConfirmedEvent is published once the backend has verified a payment
type OrderConfirmedEvent struct {
	Version   string                `json:"version"`
	EventType string                `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	TraceID   string                `json:"trace_id"`
	Payload   OrderConfirmedPayload `json:"payload"`
}

// OrderConfirmedPayload contains the confirmed order.
// Amount is a decimal string in major units.
type OrderConfirmedPayload struct {
	AttemptID   string `json:"attempt_id"`
	SessionID   string `json:"session_id"`
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	CouponCode  string `json:"coupon_code,omitempty"`
}

// NewOrderConfirmedEvent creates a new OrderConfirmedEvent
func NewOrderConfirmedEvent(payload OrderConfirmedPayload, traceID string) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		Version:   "1.0",
		EventType: RoutingKeyOrderConfirmed,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload:   payload,
	}
}

// CheckoutFailedEvent is published when a checkout attempt ends in failure
type CheckoutFailedEvent struct {
	Version   string                `json:"version"`
	EventType string                `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	TraceID   string                `json:"trace_id"`
	Payload   CheckoutFailedPayload `json:"payload"`
}

// CheckoutFailedPayload describes why the attempt failed
type CheckoutFailedPayload struct {
	AttemptID       string `json:"attempt_id"`
	SessionID       string `json:"session_id"`
	Stage           string `json:"stage"`
	Message         string `json:"message"`
	Retryable       bool   `json:"retryable"`
	RestartRequired bool   `json:"restart_required"`
}

// NewCheckoutFailedEvent creates a new CheckoutFailedEvent
func NewCheckoutFailedEvent(payload CheckoutFailedPayload, traceID string) *CheckoutFailedEvent {
	return &CheckoutFailedEvent{
		Version:   "1.0",
		EventType: RoutingKeyCheckoutFailed,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload:   payload,
	}
}

// Envelope is the part common to every event, used to route on event_type
type Envelope struct {
	Version   string    `json:"version"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	TraceID   string    `json:"trace_id"`
}
