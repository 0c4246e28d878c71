package domain

import (
	"strings"

	"storefront/pkg/errors"
)

const (
	// GenericCreateFailure is shown when order creation fails without a
	// server message
	GenericCreateFailure = "Failed to create order. Please try again."
	// GenericVerifyFailure is shown when verification fails without a
	// server message
	GenericVerifyFailure = "Payment verification failed. Please contact support."
	// RestartMessage is shown when the server reports the order as cancelled
	RestartMessage = "This order was previously cancelled. Please refresh the page and start a new checkout."
	// WidgetFailureMessage is shown when the payment widget cannot load
	WidgetFailureMessage = "Payment gateway failed to load. Please refresh the page and try again."
	// DismissedMessage is recorded when the shopper closes the widget
	DismissedMessage = "Payment was cancelled. You can retry the payment."

	// cancelledPhrase is what servers without structured codes say
	cancelledPhrase = "previously cancelled"
)

// Domain-specific errors
var (
	ErrSessionRequired    = errors.NewValidation("session is required", nil)
	ErrAddressRequired    = errors.NewValidation("Please select a shipping address", nil)
	ErrEmptyCart          = errors.NewValidation("Your cart is empty", nil)
	ErrPaymentMethod      = errors.NewValidation("unsupported payment method", nil)
	ErrCheckoutInProgress = errors.NewConflict("a checkout is already being created for this session")
	ErrAttemptModified    = errors.NewConflict("checkout attempt was modified by another request")
	ErrOrderMismatch      = errors.NewValidation("payment does not belong to this checkout", nil)
	ErrPaymentFields      = errors.NewValidation("payment id and signature are required", nil)
	ErrNotRetryable       = errors.NewConflict("this checkout cannot be retried")
	ErrRestartRequired    = &errors.AppError{Code: errors.CodeOrderCancelled, Message: RestartMessage}
)

// NewAttemptNotFound creates a not found error with the attempt ID
func NewAttemptNotFound(id string) error {
	return errors.NewNotFound("checkout attempt", id)
}

// NewInvalidTransition reports a state change the machine does not allow
func NewInvalidTransition(from, to State) error {
	return errors.NewConflict("cannot move checkout from " + string(from) + " to " + string(to))
}

// NewAdjustmentRequired asks the shopper to accept a clamped amount
func NewAdjustmentRequired(total, chargeable string) error {
	return errors.NewValidation("Order total is below the minimum charge and will be adjusted", map[string]interface{}{
		"total":                  total,
		"chargeable_amount":      chargeable,
		"acknowledge_adjustment": true,
	})
}

// IsCancellation reports whether a server failure means the order was
// cancelled. The structured code wins; the phrase covers older servers.
func IsCancellation(code, message string) bool {
	if code == errors.CodeOrderCancelled {
		return true
	}
	return strings.Contains(strings.ToLower(message), cancelledPhrase)
}
