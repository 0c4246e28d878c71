package adapters

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/checkout/domain"
	"storefront/pkg/events"
	"storefront/pkg/logger"
)

// recordingPublisher captures published messages as JSON
type recordingPublisher struct {
	keys     []string
	messages [][]byte
}

func (r *recordingPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	r.keys = append(r.keys, routingKey)
	r.messages = append(r.messages, data)
	return nil
}

// recordingNotifier captures notifications
type recordingNotifier struct {
	confirmed []events.OrderConfirmedPayload
	failed    []events.CheckoutFailedPayload
}

func (r *recordingNotifier) OrderConfirmed(ctx context.Context, p events.OrderConfirmedPayload) error {
	r.confirmed = append(r.confirmed, p)
	return nil
}

func (r *recordingNotifier) CheckoutFailed(ctx context.Context, p events.CheckoutFailedPayload) error {
	r.failed = append(r.failed, p)
	return nil
}

func confirmedAttempt() *domain.Attempt {
	a := domain.NewAttempt("s-1", "addr-1")
	a.ChargeAmount = decimal.NewFromInt(800)
	a.Currency = "INR"
	a.Coupon = &domain.CouponSnapshot{Code: "SAVE20"}
	a.OrderID = "o-1"
	a.OrderNumber = "ORD-1"
	return a
}

func TestPublisherToConsumer_OrderConfirmed(t *testing.T) {
	// Arrange
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}
	consumer := &CheckoutEventsConsumer{notifier: notifier, log: logger.NewNop()}
	ctx := logger.WithTraceIDContext(context.Background(), "trace-9")

	// Act
	require.NoError(t, NewRabbitMQPublisher(pub, logger.NewNop()).PublishOrderConfirmed(ctx, confirmedAttempt()))
	require.Len(t, pub.messages, 1)
	err := consumer.HandleMessage(context.Background(), pub.messages[0])

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{events.RoutingKeyOrderConfirmed}, pub.keys)
	require.Len(t, notifier.confirmed, 1)
	assert.Equal(t, "ORD-1", notifier.confirmed[0].OrderNumber)
	assert.Equal(t, "800.00", notifier.confirmed[0].Amount)
	assert.Equal(t, "SAVE20", notifier.confirmed[0].CouponCode)

	var envelope events.Envelope
	require.NoError(t, json.Unmarshal(pub.messages[0], &envelope))
	assert.Equal(t, "trace-9", envelope.TraceID)
}

func TestPublisherToConsumer_CheckoutFailed(t *testing.T) {
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}
	consumer := &CheckoutEventsConsumer{notifier: notifier, log: logger.NewNop()}
	attempt := domain.NewAttempt("s-1", "addr-1")
	require.NoError(t, attempt.BeginOrderCreation())
	require.NoError(t, attempt.OrderCreated("gw"))
	require.NoError(t, attempt.BeginVerification("p", "s"))
	require.NoError(t, attempt.Cancelled(domain.StageVerify))

	require.NoError(t, NewRabbitMQPublisher(pub, logger.NewNop()).PublishCheckoutFailed(context.Background(), attempt))
	require.NoError(t, consumer.HandleMessage(context.Background(), pub.messages[0]))

	require.Len(t, notifier.failed, 1)
	assert.True(t, notifier.failed[0].RestartRequired)
	assert.Equal(t, string(domain.StageVerify), notifier.failed[0].Stage)
}

func TestConsumer_BadAndUnknownMessages(t *testing.T) {
	notifier := &recordingNotifier{}
	consumer := &CheckoutEventsConsumer{notifier: notifier, log: logger.NewNop()}

	assert.Error(t, consumer.HandleMessage(context.Background(), []byte("not json")))
	assert.NoError(t, consumer.HandleMessage(context.Background(), []byte(`{"event_type":"something.else"}`)))
	assert.Empty(t, notifier.confirmed)
	assert.Empty(t, notifier.failed)
}
