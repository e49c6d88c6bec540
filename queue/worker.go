package queue

import (
	"context"
	"encoding/json"

	"github.com/nabokov223u/CRM-Originarsa/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier fans one application event out to the notification channels.
// Implementations must swallow channel failures: notification delivery is
// best-effort and never propagates back into the queue.
type Notifier interface {
	ApplicationCreated(ctx context.Context, payload ApplicationCreatedPayload)
}

// Worker consumes application events and hands them to the notifier
type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

// NewWorker creates a notification worker
func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

// Start consumes the queue until the channel closes
func (w *Worker) Start(queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			var payload ApplicationCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				utils.LogError(err, map[string]interface{}{"queue": queueName}, "malformed message, rejected without requeue")
				_ = d.Nack(false, false)
				continue
			}

			utils.Logger.Info().
				Str("nativeId", payload.NativeID).
				Str("fullName", payload.FullName).
				Msg("dispatching application notifications")

			// the notifier never fails the message: partial or total
			// channel failure is logged there, the event is done either way
			w.Notifier.ApplicationCreated(context.Background(), payload)
			_ = d.Ack(false)
		}
	}()

	utils.Logger.Info().Str("queue", queueName).Msg("notification worker running")
	return nil
}
