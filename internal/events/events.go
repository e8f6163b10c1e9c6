package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"pitak-order-api/internal/model"
)

const Exchange = "order_events"

// Event names carried on the order_events exchange.
const (
	EventOrderCreated  = "order.created"
	EventStatusChanged = "order.status_changed"
	EventSlipReceived  = "order.slip_received"
)

// OrderPayload is the order snapshot carried inside an event.
type OrderPayload struct {
	OrderID      string  `json:"orderId"`
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	AmuletName   string  `json:"amuletName"`
	Quantity     int     `json:"quantity"`
	Total        float64 `json:"total"`
	LineUserID   string  `json:"lineUserId,omitempty"`
}

// OrderEvent is the wire envelope published after a store write has
// already succeeded. Consumers must tolerate events for orders they
// cannot act on (e.g. no LINE recipient).
type OrderEvent struct {
	CorrelationID string       `json:"correlation_id"`
	Event         string       `json:"event"`
	OccurredAt    time.Time    `json:"occurred_at"`
	Order         OrderPayload `json:"order"`
	NewStatus     string       `json:"new_status,omitempty"`
}

func payloadFrom(o *model.Order) OrderPayload {
	return OrderPayload{
		OrderID:      o.OrderID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		AmuletName:   o.AmuletName,
		Quantity:     o.Quantity,
		Total:        o.Total,
		LineUserID:   o.LineUserID,
	}
}

// Publisher emits order events to the fanout exchange.
type Publisher struct {
	ch *amqp091.Channel
}

func NewPublisher(ch *amqp091.Channel) *Publisher {
	return &Publisher{ch: ch}
}

func (p *Publisher) publish(ctx context.Context, evt OrderEvent) error {
	evt.CorrelationID = uuid.NewString()
	evt.OccurredAt = time.Now().UTC()

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		Exchange,
		"", // fanout ignores the routing key
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			MessageId:   evt.CorrelationID,
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Event, err)
	}
	return nil
}

func (p *Publisher) OrderCreated(ctx context.Context, o *model.Order) error {
	return p.publish(ctx, OrderEvent{
		Event: EventOrderCreated,
		Order: payloadFrom(o),
	})
}

func (p *Publisher) StatusChanged(ctx context.Context, o *model.Order, newStatus model.Status) error {
	return p.publish(ctx, OrderEvent{
		Event:     EventStatusChanged,
		Order:     payloadFrom(o),
		NewStatus: string(newStatus),
	})
}

func (p *Publisher) SlipReceived(ctx context.Context, o *model.Order) error {
	return p.publish(ctx, OrderEvent{
		Event: EventSlipReceived,
		Order: payloadFrom(o),
	})
}
