package adapters

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/rabbitmq"
)

// NotifierQueue is the queue the notifier binds to the checkout exchange
const NotifierQueue = "notifier.checkout"

// Notifier tells the shopper how their checkout ended
type Notifier interface {
	OrderConfirmed(ctx context.Context, payload events.OrderConfirmedPayload) error
	CheckoutFailed(ctx context.Context, payload events.CheckoutFailedPayload) error
}

// CheckoutEventsConsumer consumes checkout events and hands them to a Notifier
type CheckoutEventsConsumer struct {
	consumer *rabbitmq.Consumer
	notifier Notifier
	log      *logger.Logger
}

// NewCheckoutEventsConsumer creates a new consumer for checkout events
func NewCheckoutEventsConsumer(conn *rabbitmq.Connection, notifier Notifier, log *logger.Logger) (*CheckoutEventsConsumer, error) {
	consumer, err := rabbitmq.NewConsumer(
		conn,
		NotifierQueue,
		events.ExchangeCheckout,
		[]string{events.RoutingKeyOrderConfirmed, events.RoutingKeyCheckoutFailed},
		log,
	)
	if err != nil {
		return nil, err
	}

	return &CheckoutEventsConsumer{
		consumer: consumer,
		notifier: notifier,
		log:      log,
	}, nil
}

// Start starts consuming checkout events
func (c *CheckoutEventsConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.HandleMessage)
}

// HandleMessage decodes one event and notifies. Unknown event types are
// acknowledged and dropped.
func (c *CheckoutEventsConsumer) HandleMessage(ctx context.Context, body []byte) error {
	var envelope events.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.log.WithContext(ctx).Error("failed to unmarshal checkout event", zap.Error(err))
		return err
	}
	if envelope.TraceID != "" {
		ctx = logger.WithTraceIDContext(ctx, envelope.TraceID)
	}

	switch envelope.EventType {
	case events.RoutingKeyOrderConfirmed:
		var event events.OrderConfirmedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return err
		}
		return c.notifier.OrderConfirmed(ctx, event.Payload)

	case events.RoutingKeyCheckoutFailed:
		var event events.CheckoutFailedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return err
		}
		return c.notifier.CheckoutFailed(ctx, event.Payload)

	default:
		c.log.WithContext(ctx).Warn("ignoring unknown checkout event",
			zap.String("event_type", envelope.EventType),
		)
		return nil
	}
}

// LogNotifier writes notifications to the log
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a notifier that logs
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// OrderConfirmed logs the success notification
func (n *LogNotifier) OrderConfirmed(ctx context.Context, p events.OrderConfirmedPayload) error {
	n.log.WithContext(ctx).Info("order placed successfully",
		zap.String("session_id", p.SessionID),
		zap.String("order_number", p.OrderNumber),
		zap.String("amount", p.Amount),
		zap.String("currency", p.Currency),
	)
	return nil
}

// CheckoutFailed logs the failure notification
func (n *LogNotifier) CheckoutFailed(ctx context.Context, p events.CheckoutFailedPayload) error {
	n.log.WithContext(ctx).Info("checkout failed",
		zap.String("session_id", p.SessionID),
		zap.String("attempt_id", p.AttemptID),
		zap.String("stage", p.Stage),
		zap.String("message", p.Message),
		zap.Bool("retryable", p.Retryable),
		zap.Bool("restart_required", p.RestartRequired),
	)
	return nil
}
