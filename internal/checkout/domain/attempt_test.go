package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/errors"
)

func awaiting(t *testing.T) *Attempt {
	t.Helper()
	a := NewAttempt("s-1", "addr-1")
	require.NoError(t, a.BeginOrderCreation())
	require.NoError(t, a.OrderCreated("order_1"))
	return a
}

func TestAttempt_HappyPath(t *testing.T) {
	a := NewAttempt("s-1", "addr-1")
	assert.Equal(t, StateIdle, a.State)
	assert.Equal(t, OrderDraft, a.OrderStatus)

	require.NoError(t, a.BeginOrderCreation())
	require.NoError(t, a.OrderCreated("order_1"))
	assert.Equal(t, OrderAwaitingPayment, a.OrderStatus)
	require.NoError(t, a.BeginVerification("pay_1", "sig"))
	assert.Equal(t, OrderVerifying, a.OrderStatus)
	require.NoError(t, a.Confirm("o-1", "ORD-1001"))

	assert.Equal(t, StateConfirmed, a.State)
	assert.Equal(t, OrderConfirmed, a.OrderStatus)
	assert.Equal(t, int64(4), a.Token)
	assert.True(t, a.Terminal())
}

func TestAttempt_InvalidTransitions(t *testing.T) {
	a := NewAttempt("s-1", "addr-1")

	assert.True(t, errors.Is(a.BeginVerification("p", "s"), errors.CodeConflict))
	assert.True(t, errors.Is(a.Confirm("o", "n"), errors.CodeConflict))
	assert.True(t, errors.Is(a.Dismiss(), errors.CodeConflict))
	assert.Equal(t, int64(0), a.Token)
}

func TestAttempt_DismissAndResume(t *testing.T) {
	a := awaiting(t)

	require.NoError(t, a.Dismiss())
	assert.Equal(t, StateFailed, a.State)
	assert.True(t, a.Retryable)
	assert.False(t, a.Terminal())

	require.NoError(t, a.Resume())
	assert.Equal(t, StateAwaitingGateway, a.State)
	assert.Equal(t, "order_1", a.GatewayOrderID)
	assert.Empty(t, a.FailureMessage)
}

func TestAttempt_CancelledCannotResume(t *testing.T) {
	a := awaiting(t)
	require.NoError(t, a.BeginVerification("pay_1", "sig"))

	require.NoError(t, a.Cancelled(StageVerify))

	assert.Equal(t, OrderCancelled, a.OrderStatus)
	assert.True(t, a.RestartRequired)
	assert.Equal(t, RestartMessage, a.FailureMessage)
	assert.ErrorIs(t, a.Resume(), ErrRestartRequired)
	assert.True(t, a.Terminal())
}

func TestAttempt_WidgetFailureIsFatal(t *testing.T) {
	a := awaiting(t)

	require.NoError(t, a.Fail(StageWidget, WidgetFailureMessage))

	assert.ErrorIs(t, a.Resume(), ErrNotRetryable)
	assert.True(t, a.Terminal())
}

func TestAttempt_InFlightExpires(t *testing.T) {
	a := NewAttempt("s-1", "addr-1")
	now := time.Now()
	assert.False(t, a.InFlight(now))

	require.NoError(t, a.BeginOrderCreation())
	assert.True(t, a.InFlight(now))
	assert.False(t, a.InFlight(a.UpdatedAt.Add(InFlightWindow)))

	require.NoError(t, a.OrderCreated("order_1"))
	assert.False(t, a.InFlight(now))
}

func TestIsCancellation(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		message string
		want    bool
	}{
		{name: "structured code", code: "ORDER_CANCELLED", message: "nope", want: true},
		{name: "legacy message", message: "Order was Previously Cancelled by admin", want: true},
		{name: "other failure", code: "SIGNATURE_MISMATCH", message: "Invalid signature"},
		{name: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCancellation(tt.code, tt.message))
		})
	}
}
