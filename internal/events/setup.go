// setup.go
package events

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const notifyQueue = "pitak_notifications"

// Setup declares the order_events fanout exchange and returns a
// publisher bound to it.
func Setup(ch *amqp091.Channel) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		Exchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return NewPublisher(ch), nil
}

// SetupNotifyConsumer binds the notification queue to the exchange
// and starts draining it in a goroutine.
func SetupNotifyConsumer(ch *amqp091.Channel, consumer *NotifyConsumer) error {
	q, err := ch.QueueDeclare(
		notifyQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	err = ch.QueueBind(
		q.Name,
		"", // fanout ignores the routing key
		Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for m := range msgs {
			if err := consumer.Handle(context.Background(), m.Body); err != nil {
				zap.L().Warn("notify consumer error", zap.Error(err))
			}
		}
	}()

	zap.L().Info("subscribed to order events", zap.String("queue", q.Name))
	return nil
}
