package adapters

import (
	"context"

	"storefront/internal/checkout/domain"
	"storefront/pkg/events"
	"storefront/pkg/logger"
)

// MessagePublisher publishes a message under a routing key.
// *rabbitmq.Publisher satisfies it.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// RabbitMQPublisher implements EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher MessagePublisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher MessagePublisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishOrderConfirmed publishes an order confirmed event
func (p *RabbitMQPublisher) PublishOrderConfirmed(ctx context.Context, attempt *domain.Attempt) error {
	payload := events.OrderConfirmedPayload{
		AttemptID:   attempt.ID,
		SessionID:   attempt.SessionID,
		OrderID:     attempt.OrderID,
		OrderNumber: attempt.OrderNumber,
		Amount:      attempt.ChargeAmount.StringFixed(2),
		Currency:    attempt.Currency,
	}
	if attempt.Coupon != nil {
		payload.CouponCode = attempt.Coupon.Code
	}

	event := events.NewOrderConfirmedEvent(payload, logger.GetTraceID(ctx))
	return p.publisher.Publish(ctx, events.RoutingKeyOrderConfirmed, event)
}

// PublishCheckoutFailed publishes a checkout failed event
func (p *RabbitMQPublisher) PublishCheckoutFailed(ctx context.Context, attempt *domain.Attempt) error {
	event := events.NewCheckoutFailedEvent(events.CheckoutFailedPayload{
		AttemptID:       attempt.ID,
		SessionID:       attempt.SessionID,
		Stage:           string(attempt.FailureStage),
		Message:         attempt.FailureMessage,
		Retryable:       attempt.Retryable,
		RestartRequired: attempt.RestartRequired,
	}, logger.GetTraceID(ctx))

	return p.publisher.Publish(ctx, events.RoutingKeyCheckoutFailed, event)
}
