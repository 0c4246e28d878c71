package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State is the checkout state machine position
type State string

// Checkout states
const (
	StateIdle            State = "IDLE"
	StateCreatingOrder   State = "CREATING_ORDER"
	StateAwaitingGateway State = "AWAITING_GATEWAY"
	StateVerifying       State = "VERIFYING"
	StateConfirmed       State = "CONFIRMED"
	StateFailed          State = "FAILED"
)

// OrderStatus is the order's lifecycle as the shopper sees it
type OrderStatus string

// Order statuses
const (
	OrderDraft           OrderStatus = "DRAFT"
	OrderAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderVerifying       OrderStatus = "VERIFYING"
	OrderConfirmed       OrderStatus = "CONFIRMED"
	OrderFailed          OrderStatus = "FAILED"
	OrderCancelled       OrderStatus = "CANCELLED"
)

// FailureStage records where a failed attempt stopped
type FailureStage string

// Failure stages
const (
	StageCreateOrder FailureStage = "create_order"
	StageVerify      FailureStage = "verify_payment"
	StageWidget      FailureStage = "widget_load"
	StageDismissed   FailureStage = "dismissed"
)

// PaymentMethodOnline is the only method the gateway flow supports
const PaymentMethodOnline = "online"

var transitions = map[State][]State{
	StateIdle:            {StateCreatingOrder},
	StateCreatingOrder:   {StateAwaitingGateway, StateFailed},
	StateAwaitingGateway: {StateVerifying, StateFailed},
	StateVerifying:       {StateConfirmed, StateFailed},
	StateFailed:          {StateAwaitingGateway},
}

// CanTransition reports whether the machine allows from → to
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CouponSnapshot is the coupon metadata sent along for auditing
type CouponSnapshot struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// Customer prefills the payment widget
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// Attempt is one checkout of a cart: the order draft plus its progress
// through the payment flow. Token increases on every transition.
type Attempt struct {
	ID                string
	SessionID         string
	State             State
	OrderStatus       OrderStatus
	Token             int64
	Subtotal          decimal.Decimal
	Discount          decimal.Decimal
	Total             decimal.Decimal
	ChargeAmount      decimal.Decimal
	AmountAdjusted    bool
	DiscountCapped    bool
	Currency          string
	ShippingAddressID string
	PaymentMethod     string
	Coupon            *CouponSnapshot
	Customer          Customer
	Notes             map[string]string
	GatewayOrderID    string
	PaymentID         string
	Signature         string
	OrderID           string
	OrderNumber       string
	FailureStage      FailureStage
	FailureMessage    string
	Retryable         bool
	RestartRequired   bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewAttempt creates an attempt in IDLE holding the order draft
func NewAttempt(sessionID, addressID string) *Attempt {
	now := time.Now()
	return &Attempt{
		ID:                uuid.New().String(),
		SessionID:         sessionID,
		State:             StateIdle,
		OrderStatus:       OrderDraft,
		ShippingAddressID: addressID,
		PaymentMethod:     PaymentMethodOnline,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Terminal reports whether the attempt can no longer change
func (a *Attempt) Terminal() bool {
	return a.State == StateConfirmed || (a.State == StateFailed && !a.Retryable)
}

// InFlightWindow bounds how long an attempt in CREATING_ORDER keeps
// blocking new checkouts for its session
const InFlightWindow = 2 * time.Minute

// InFlight reports whether the attempt is still creating its order at now
func (a *Attempt) InFlight(now time.Time) bool {
	return a.State == StateCreatingOrder && now.Sub(a.UpdatedAt) < InFlightWindow
}

func (a *Attempt) transition(to State, status OrderStatus) error {
	if !CanTransition(a.State, to) {
		return NewInvalidTransition(a.State, to)
	}
	a.State = to
	a.OrderStatus = status
	a.Token++
	a.UpdatedAt = time.Now()
	return nil
}

// BeginOrderCreation moves IDLE → CREATING_ORDER
func (a *Attempt) BeginOrderCreation() error {
	return a.transition(StateCreatingOrder, OrderDraft)
}

// OrderCreated records the gateway order and waits for the widget
func (a *Attempt) OrderCreated(gatewayOrderID string) error {
	if err := a.transition(StateAwaitingGateway, OrderAwaitingPayment); err != nil {
		return err
	}
	a.GatewayOrderID = gatewayOrderID
	return nil
}

// BeginVerification records the widget callback
func (a *Attempt) BeginVerification(paymentID, signature string) error {
	if err := a.transition(StateVerifying, OrderVerifying); err != nil {
		return err
	}
	a.PaymentID = paymentID
	a.Signature = signature
	return nil
}

// Confirm records the order the backend placed
func (a *Attempt) Confirm(orderID, orderNumber string) error {
	if err := a.transition(StateConfirmed, OrderConfirmed); err != nil {
		return err
	}
	a.OrderID = orderID
	a.OrderNumber = orderNumber
	a.clearFailure()
	return nil
}

// Fail moves to FAILED with a message for the shopper
func (a *Attempt) Fail(stage FailureStage, message string) error {
	if err := a.transition(StateFailed, OrderFailed); err != nil {
		return err
	}
	a.FailureStage = stage
	a.FailureMessage = message
	a.Retryable = false
	return nil
}

// Cancelled marks an attempt whose order the server reports as cancelled.
// It can never be resumed.
func (a *Attempt) Cancelled(stage FailureStage) error {
	if err := a.transition(StateFailed, OrderCancelled); err != nil {
		return err
	}
	a.FailureStage = stage
	a.FailureMessage = RestartMessage
	a.Retryable = false
	a.RestartRequired = true
	return nil
}

// Dismiss records that the shopper closed the widget without paying
func (a *Attempt) Dismiss() error {
	if a.State != StateAwaitingGateway {
		return NewInvalidTransition(a.State, StateFailed)
	}
	if err := a.transition(StateFailed, OrderFailed); err != nil {
		return err
	}
	a.FailureStage = StageDismissed
	a.FailureMessage = DismissedMessage
	a.Retryable = true
	return nil
}

// Resume reopens the widget for a dismissed attempt
func (a *Attempt) Resume() error {
	if a.State != StateFailed || !a.Retryable || a.RestartRequired {
		if a.RestartRequired {
			return ErrRestartRequired
		}
		return ErrNotRetryable
	}
	if err := a.transition(StateAwaitingGateway, OrderAwaitingPayment); err != nil {
		return err
	}
	a.clearFailure()
	return nil
}

func (a *Attempt) clearFailure() {
	a.FailureStage = ""
	a.FailureMessage = ""
	a.Retryable = false
}
