// models.go
package model

import "time"

// Status is the lifecycle state of an order. Every state may move to
// every other state; there is no terminal state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// AllStatuses in display order.
var AllStatuses = []Status{
	StatusPending,
	StatusPaid,
	StatusShipped,
	StatusCompleted,
	StatusCancelled,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ThaiLabel is the customer-facing status text used in LINE messages.
func (s Status) ThaiLabel() string {
	switch s {
	case StatusPending:
		return "รอชำระเงิน"
	case StatusPaid:
		return "ชำระเงินแล้ว ✅"
	case StatusShipped:
		return "จัดส่งแล้ว 🚚"
	case StatusCompleted:
		return "เสร็จสิ้น ✨"
	case StatusCancelled:
		return "ยกเลิก ❌"
	}
	return string(s)
}

// Order is the single entity of the system. OrderID is the business
// key chosen by the customer; RecordID is the Notion page id and is
// owned by the store, we only carry it for updates.
type Order struct {
	OrderID      string    `json:"orderId"`
	RecordID     string    `json:"-"`
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone"`
	AmuletName   string    `json:"amuletName"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Total        float64   `json:"total"`
	Status       Status    `json:"status"`
	SlipURL      string    `json:"slipUrl,omitempty"`
	LineUserID   string    `json:"lineUserId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
