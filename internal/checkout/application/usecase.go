package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/checkout/domain"
	"storefront/internal/checkout/ports"
	"storefront/internal/pricing"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

const (
	// RedirectPath is where the shopper lands after a confirmed order
	RedirectPath = "/orders"
	// RedirectAfter is the fixed countdown before that redirect
	RedirectAfter = 3 * time.Second

	// persistTimeout bounds writes that must outlive the request
	persistTimeout = 5 * time.Second
)

// WidgetConfig holds the static payment widget settings
type WidgetConfig struct {
	KeyID      string
	Currency   string
	StoreName  string
	ThemeColor string
}

// CheckoutUseCase drives a cart through order creation, the payment
// widget and server-side verification
type CheckoutUseCase struct {
	repo      ports.AttemptRepository
	carts     ports.CartService
	gateway   ports.OrderGateway
	publisher ports.EventPublisher
	widget    WidgetConfig
	guard     *sessionGuard
	log       *logger.Logger
}

// NewCheckoutUseCase creates a new checkout use case. publisher may be nil.
func NewCheckoutUseCase(
	repo ports.AttemptRepository,
	carts ports.CartService,
	gateway ports.OrderGateway,
	publisher ports.EventPublisher,
	widget WidgetConfig,
	log *logger.Logger,
) *CheckoutUseCase {
	if widget.Currency == "" {
		widget.Currency = "INR"
	}
	return &CheckoutUseCase{
		repo:      repo,
		carts:     carts,
		gateway:   gateway,
		publisher: publisher,
		widget:    widget,
		guard:     newSessionGuard(),
		log:       log,
	}
}

// QuoteInput represents the input for pricing a checkout
type QuoteInput struct {
	SessionID string
	AddressID string
}

// QuoteOutput is what the shopper will be charged
type QuoteOutput struct {
	Totals          pricing.Totals
	ChargeAmount    decimal.Decimal
	AmountAdjusted  bool
	Currency        string
	ItemCount       int
	AddressSelected bool
}

// Quote prices the cart for checkout without side effects
func (uc *CheckoutUseCase) Quote(ctx context.Context, input QuoteInput) (*QuoteOutput, error) {
	if input.SessionID == "" {
		return nil, domain.ErrSessionRequired
	}

	cart, err := uc.carts.Snapshot(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	amount, adjusted := pricing.Chargeable(cart.Totals.Total)
	return &QuoteOutput{
		Totals:          cart.Totals,
		ChargeAmount:    amount,
		AmountAdjusted:  adjusted,
		Currency:        uc.widget.Currency,
		ItemCount:       cart.ItemCount,
		AddressSelected: input.AddressID != "",
	}, nil
}

// WidgetOptions configure the payment widget. Amount is in minor units.
type WidgetOptions struct {
	Key         string          `json:"key"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	OrderID     string          `json:"order_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Prefill     domain.Customer `json:"prefill"`
	Theme       WidgetTheme     `json:"theme"`
}

// WidgetTheme is the widget's colour scheme
type WidgetTheme struct {
	Color string `json:"color"`
}

func (uc *CheckoutUseCase) widgetOptions(a *domain.Attempt) *WidgetOptions {
	return &WidgetOptions{
		Key:         uc.widget.KeyID,
		Amount:      pricing.ToMinorUnits(a.ChargeAmount),
		Currency:    a.Currency,
		OrderID:     a.GatewayOrderID,
		Name:        uc.widget.StoreName,
		Description: fmt.Sprintf("Payment for order of %s %s", a.ChargeAmount.StringFixed(2), a.Currency),
		Prefill:     a.Customer,
		Theme:       WidgetTheme{Color: uc.widget.ThemeColor},
	}
}

// StartCheckoutInput represents the input for starting a checkout
type StartCheckoutInput struct {
	SessionID             string
	AddressID             string
	PaymentMethod         string
	AcknowledgeAdjustment bool
	Customer              domain.Customer
	Notes                 map[string]string
}

// AttemptOutput is an attempt plus the widget options when the widget
// should be open
type AttemptOutput struct {
	Attempt *domain.Attempt
	Widget  *WidgetOptions
}

// StartCheckout creates the gateway order for the session's cart and
// returns the widget options to pay it
func (uc *CheckoutUseCase) StartCheckout(ctx context.Context, input StartCheckoutInput) (*AttemptOutput, error) {
	if input.SessionID == "" {
		return nil, domain.ErrSessionRequired
	}
	if input.AddressID == "" {
		return nil, domain.ErrAddressRequired
	}
	if input.PaymentMethod != "" && input.PaymentMethod != domain.PaymentMethodOnline {
		return nil, domain.ErrPaymentMethod
	}

	cart, err := uc.carts.Snapshot(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	amount, adjusted := pricing.Chargeable(cart.Totals.Total)
	if adjusted && !input.AcknowledgeAdjustment {
		return nil, domain.NewAdjustmentRequired(cart.Totals.Total.StringFixed(2), amount.StringFixed(2))
	}

	if !uc.guard.acquire(input.SessionID) {
		return nil, domain.ErrCheckoutInProgress
	}
	defer uc.guard.release(input.SessionID)

	inFlight, err := uc.repo.HasInFlight(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if inFlight {
		return nil, domain.ErrCheckoutInProgress
	}

	attempt := domain.NewAttempt(input.SessionID, input.AddressID)
	attempt.Subtotal = cart.Totals.Subtotal
	attempt.Discount = cart.Totals.Discount
	attempt.Total = cart.Totals.Total
	attempt.DiscountCapped = cart.Totals.DiscountCapped
	attempt.ChargeAmount = amount
	attempt.AmountAdjusted = adjusted
	attempt.Currency = uc.widget.Currency
	attempt.Customer = input.Customer
	attempt.Notes = input.Notes
	if cart.CouponCode != "" {
		attempt.Coupon = &domain.CouponSnapshot{
			ID:             cart.CouponID,
			Code:           cart.CouponCode,
			DiscountAmount: cart.Totals.Discount,
		}
	}
	if err := attempt.BeginOrderCreation(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, attempt); err != nil {
		return nil, err
	}

	log := uc.log.WithContext(ctx).With(zap.String("attempt_id", attempt.ID))

	order, err := uc.gateway.CreateOrder(ctx, ports.CreateOrderRequest{
		AttemptID: attempt.ID,
		Amount:    amount,
		Currency:  attempt.Currency,
		Coupon:    attempt.Coupon,
	})
	if err != nil {
		log.Warn("gateway order creation failed", zap.Error(err))
		return nil, uc.fail(ctx, attempt, domain.StageCreateOrder, err, domain.GenericCreateFailure)
	}

	if err := uc.advance(ctx, attempt, func() error {
		return attempt.OrderCreated(order.ID)
	}); err != nil {
		return nil, err
	}

	log.Info("checkout started",
		zap.String("gateway_order_id", order.ID),
		zap.String("amount", amount.StringFixed(2)),
		zap.Bool("amount_adjusted", adjusted),
	)

	return &AttemptOutput{Attempt: attempt, Widget: uc.widgetOptions(attempt)}, nil
}

// AttemptInput identifies an attempt of a session
type AttemptInput struct {
	AttemptID string
	SessionID string
}

// GetAttempt reads back an attempt
func (uc *CheckoutUseCase) GetAttempt(ctx context.Context, input AttemptInput) (*AttemptOutput, error) {
	attempt, err := uc.load(ctx, input)
	if err != nil {
		return nil, err
	}

	out := &AttemptOutput{Attempt: attempt}
	if attempt.State == domain.StateAwaitingGateway {
		out.Widget = uc.widgetOptions(attempt)
	}
	return out, nil
}

// ConfirmPaymentInput is the payment widget callback
type ConfirmPaymentInput struct {
	AttemptID      string
	SessionID      string
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// ConfirmPaymentOutput is a placed order and where to send the shopper
type ConfirmPaymentOutput struct {
	Attempt       *domain.Attempt
	RedirectTo    string
	RedirectAfter time.Duration
}

// ConfirmPayment verifies the widget callback with the backend
func (uc *CheckoutUseCase) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*ConfirmPaymentOutput, error) {
	attempt, err := uc.load(ctx, AttemptInput{AttemptID: input.AttemptID, SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	// a repeated callback for a placed order gets the same answer
	if attempt.State == domain.StateConfirmed && attempt.PaymentID == input.PaymentID {
		return confirmed(attempt), nil
	}
	if attempt.RestartRequired {
		return nil, domain.ErrRestartRequired
	}
	if attempt.State != domain.StateAwaitingGateway {
		return nil, domain.NewInvalidTransition(attempt.State, domain.StateVerifying)
	}
	if input.GatewayOrderID != attempt.GatewayOrderID {
		return nil, domain.ErrOrderMismatch
	}
	if input.PaymentID == "" || input.Signature == "" {
		return nil, domain.ErrPaymentFields
	}

	if err := uc.advance(ctx, attempt, func() error {
		return attempt.BeginVerification(input.PaymentID, input.Signature)
	}); err != nil {
		return nil, err
	}

	log := uc.log.WithContext(ctx).With(zap.String("attempt_id", attempt.ID))

	order, err := uc.gateway.VerifyPayment(ctx, ports.VerifyPaymentRequest{
		AttemptID:         attempt.ID,
		GatewayOrderID:    attempt.GatewayOrderID,
		PaymentID:         attempt.PaymentID,
		Signature:         attempt.Signature,
		ShippingAddressID: attempt.ShippingAddressID,
		Coupon:            attempt.Coupon,
		Notes:             attempt.Notes,
	})
	if err != nil {
		log.Warn("payment verification failed", zap.Error(err))
		return nil, uc.fail(ctx, attempt, domain.StageVerify, err, domain.GenericVerifyFailure)
	}

	if err := uc.advance(ctx, attempt, func() error {
		return attempt.Confirm(order.OrderID, order.OrderNumber)
	}); err != nil {
		return nil, err
	}

	after, cancel := detached(ctx)
	defer cancel()
	if err := uc.carts.Clear(after, attempt.SessionID); err != nil {
		log.Error("failed to clear cart after order", zap.Error(err))
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderConfirmed(after, attempt); err != nil {
			log.Error("failed to publish order confirmed event", zap.Error(err))
		}
	}

	log.Info("order confirmed",
		zap.String("order_id", attempt.OrderID),
		zap.String("order_number", attempt.OrderNumber),
	)

	return confirmed(attempt), nil
}

func confirmed(attempt *domain.Attempt) *ConfirmPaymentOutput {
	return &ConfirmPaymentOutput{
		Attempt:       attempt,
		RedirectTo:    RedirectPath,
		RedirectAfter: RedirectAfter,
	}
}

// DismissPayment records that the shopper closed the widget. The attempt
// can be resumed with RetryPayment.
func (uc *CheckoutUseCase) DismissPayment(ctx context.Context, input AttemptInput) (*AttemptOutput, error) {
	attempt, err := uc.load(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := uc.advance(ctx, attempt, attempt.Dismiss); err != nil {
		return nil, err
	}
	uc.publishFailed(ctx, attempt)

	uc.log.WithContext(ctx).Info("payment dismissed", zap.String("attempt_id", attempt.ID))
	return &AttemptOutput{Attempt: attempt}, nil
}

// RetryPayment reopens the widget for a dismissed attempt
func (uc *CheckoutUseCase) RetryPayment(ctx context.Context, input AttemptInput) (*AttemptOutput, error) {
	attempt, err := uc.load(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := uc.advance(ctx, attempt, attempt.Resume); err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("payment retried", zap.String("attempt_id", attempt.ID))
	return &AttemptOutput{Attempt: attempt, Widget: uc.widgetOptions(attempt)}, nil
}

// WidgetFailureInput reports that the payment widget could not load
type WidgetFailureInput struct {
	AttemptID string
	SessionID string
	Reason    string
}

// ReportWidgetFailure fails the attempt for good
func (uc *CheckoutUseCase) ReportWidgetFailure(ctx context.Context, input WidgetFailureInput) (*AttemptOutput, error) {
	attempt, err := uc.load(ctx, AttemptInput{AttemptID: input.AttemptID, SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	if err := uc.advance(ctx, attempt, func() error {
		return attempt.Fail(domain.StageWidget, domain.WidgetFailureMessage)
	}); err != nil {
		return nil, err
	}
	uc.publishFailed(ctx, attempt)

	uc.log.WithContext(ctx).Warn("payment widget failed to load",
		zap.String("attempt_id", attempt.ID),
		zap.String("reason", input.Reason),
	)
	return &AttemptOutput{Attempt: attempt}, nil
}

func (uc *CheckoutUseCase) load(ctx context.Context, input AttemptInput) (*domain.Attempt, error) {
	if input.SessionID == "" {
		return nil, domain.ErrSessionRequired
	}
	attempt, err := uc.repo.Get(ctx, input.AttemptID)
	if err != nil {
		return nil, err
	}
	if attempt.SessionID != input.SessionID {
		return nil, domain.NewAttemptNotFound(input.AttemptID)
	}
	return attempt, nil
}

// detached keeps the values of ctx but drops its cancellation. State
// writes use it so a dropped request still records where the attempt is.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

// advance applies a transition and stores it, failing if another request
// moved the attempt first
func (uc *CheckoutUseCase) advance(ctx context.Context, attempt *domain.Attempt, transition func() error) error {
	state, token := attempt.State, attempt.Token
	if err := transition(); err != nil {
		return err
	}
	ctx, cancel := detached(ctx)
	defer cancel()
	return uc.repo.Update(ctx, attempt, state, token)
}

// fail records a backend failure on the attempt and returns the error to
// show the shopper. An open breaker stays UNAVAILABLE.
func (uc *CheckoutUseCase) fail(ctx context.Context, attempt *domain.Attempt, stage domain.FailureStage, cause error, generic string) error {
	code, message := "", ""
	if rejection, ok := ports.AsRejection(cause); ok {
		code, message = rejection.Code, rejection.Message
	}

	var result error
	err := uc.advance(ctx, attempt, func() error {
		if errors.Is(cause, errors.CodeUnavailable) {
			result = cause
			return attempt.Fail(stage, generic)
		}
		if domain.IsCancellation(code, message) {
			result = domain.ErrRestartRequired
			return attempt.Cancelled(stage)
		}
		if message == "" {
			message = generic
		}
		result = errors.NewUpstream(message, map[string]interface{}{
			"attempt_id": attempt.ID,
			"stage":      string(stage),
		})
		return attempt.Fail(stage, message)
	})
	if err != nil {
		uc.log.WithContext(ctx).Error("failed to record checkout failure",
			zap.String("attempt_id", attempt.ID),
			zap.Error(err),
		)
	}
	uc.publishFailed(ctx, attempt)

	return result
}

func (uc *CheckoutUseCase) publishFailed(ctx context.Context, attempt *domain.Attempt) {
	if uc.publisher == nil {
		return
	}
	ctx, cancel := detached(ctx)
	defer cancel()
	if err := uc.publisher.PublishCheckoutFailed(ctx, attempt); err != nil {
		uc.log.WithContext(ctx).Error("failed to publish checkout failed event",
			zap.String("attempt_id", attempt.ID),
			zap.Error(err),
		)
	}
}
