package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ApplicationCreatedPayload snapshot of a freshly ingested application,
// enough for the notification channels to render their templates
type ApplicationCreatedPayload struct {
	NativeID       string   `json:"native_id"`
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	IDNumber       string   `json:"id_number"`
	VehicleAmount  float64  `json:"vehicle_amount"`
	DownPaymentPct *float64 `json:"down_payment_pct,omitempty"`
	TermMonths     *int     `json:"term_months,omitempty"`
	Status         string   `json:"status"`
}

// ProducerInterface contract used by the intake webhook
type ProducerInterface interface {
	PublishApplicationCreated(ctx context.Context, payload ApplicationCreatedPayload) error
}

// RabbitMQProducer publishes application events to the broker
type RabbitMQProducer struct {
	Ch *amqp.Channel
}

// NewProducer creates a producer over an open channel
func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

// PublishApplicationCreated publishes one application-created event
func (p *RabbitMQProducer) PublishApplicationCreated(ctx context.Context, payload ApplicationCreatedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}
