package events

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"pitak-order-api/internal/model"
)

// Pusher is the slice of the LINE client the notifier needs.
type Pusher interface {
	Push(ctx context.Context, to, text string) error
}

// NotifyConsumer turns order events into LINE pushes. Delivery is
// best effort: every failure is logged and the message is dropped,
// order state is already committed by the time an event exists.
type NotifyConsumer struct {
	line        Pusher
	adminUserID string
}

func NewNotifyConsumer(line Pusher, adminUserID string) *NotifyConsumer {
	return &NotifyConsumer{line: line, adminUserID: adminUserID}
}

// formatBaht renders an amount with thousand separators, the way the
// storefront shows prices (1000 -> "1,000").
func formatBaht(amount float64) string {
	s := strconv.FormatInt(int64(math.Round(amount)), 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

func (c *NotifyConsumer) Handle(ctx context.Context, body []byte) error {
	var evt OrderEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("parse order event: %w", err)
	}

	switch evt.Event {
	case EventOrderCreated:
		c.notifyCreated(ctx, evt)
	case EventStatusChanged:
		c.notifyStatusChanged(ctx, evt)
	case EventSlipReceived:
		c.notifySlipReceived(ctx, evt)
	default:
		zap.L().Warn("unknown order event", zap.String("event", evt.Event))
	}
	return nil
}

func (c *NotifyConsumer) push(ctx context.Context, to, text string, evt OrderEvent) {
	if to == "" {
		return
	}
	if err := c.line.Push(ctx, to, text); err != nil {
		zap.L().Warn("line push failed",
			zap.String("event", evt.Event),
			zap.String("orderId", evt.Order.OrderID),
			zap.Error(err))
	}
}

func (c *NotifyConsumer) notifyCreated(ctx context.Context, evt OrderEvent) {
	o := evt.Order

	customerMsg := fmt.Sprintf(
		"🙏 สั่งจองสำเร็จ!\n\n📋 %s\n🎖️ %s x%d\n💰 %s บาท\n\n⏰ กรุณาชำระภายใน 24 ชม.",
		o.OrderID, o.AmuletName, o.Quantity, formatBaht(o.Total))
	c.push(ctx, o.LineUserID, customerMsg, evt)

	adminMsg := fmt.Sprintf(
		"🆕 Order ใหม่\n%s\n%s\n📞 %s\n💰 %s บาท",
		o.OrderID, o.CustomerName, o.Phone, formatBaht(o.Total))
	c.push(ctx, c.adminUserID, adminMsg, evt)
}

func (c *NotifyConsumer) notifyStatusChanged(ctx context.Context, evt OrderEvent) {
	o := evt.Order
	label := model.Status(evt.NewStatus).ThaiLabel()

	msg := fmt.Sprintf("📦 อัปเดตสถานะ\n%s\n→ %s", o.OrderID, label)
	c.push(ctx, o.LineUserID, msg, evt)
}

func (c *NotifyConsumer) notifySlipReceived(ctx context.Context, evt OrderEvent) {
	o := evt.Order

	msg := fmt.Sprintf("📸 สลิปใหม่!\n%s\n%s", o.OrderID, o.CustomerName)
	c.push(ctx, c.adminUserID, msg, evt)
}
