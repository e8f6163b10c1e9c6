// dto.go
package dto

import (
	"time"

	"pitak-order-api/internal/model"
)

// APIError is the machine-readable error half of the envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform response shape of every endpoint.
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(code, message string) Envelope {
	return Envelope{Success: false, Error: &APIError{Code: code, Message: message}}
}

// CreateOrderRequest is the body of POST /api/orders. Validation tags
// are evaluated by the service so every violated field can be reported
// at once, not just the first.
type CreateOrderRequest struct {
	OrderID      string  `json:"orderId" validate:"required"`
	CustomerName string  `json:"customerName" validate:"required,min=2"`
	Phone        string  `json:"phone" validate:"required,thaiphone"`
	AmuletName   string  `json:"amuletName" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	LineUserID   string  `json:"lineUserId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderResponse struct {
	OrderID      string    `json:"orderId"`
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone"`
	AmuletName   string    `json:"amuletName"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"`
	SlipURL      string    `json:"slipUrl,omitempty"`
	LineUserID   string    `json:"lineUserId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromOrder(o *model.Order) OrderResponse {
	return OrderResponse{
		OrderID:      o.OrderID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		AmuletName:   o.AmuletName,
		Quantity:     o.Quantity,
		Price:        o.Price,
		Total:        o.Total,
		Status:       string(o.Status),
		SlipURL:      o.SlipURL,
		LineUserID:   o.LineUserID,
		CreatedAt:    o.CreatedAt,
	}
}

// Summary is the admin dashboard aggregate. TotalAmount excludes
// cancelled orders.
type Summary struct {
	Total       int     `json:"total"`
	Pending     int     `json:"pending"`
	Paid        int     `json:"paid"`
	Shipped     int     `json:"shipped"`
	Completed   int     `json:"completed"`
	Cancelled   int     `json:"cancelled"`
	TotalAmount float64 `json:"totalAmount"`
}

// Summarize is a pure projection over an already fetched list; it
// never goes back to the store.
func Summarize(orders []*model.Order) Summary {
	s := Summary{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusPaid:
			s.Paid++
		case model.StatusShipped:
			s.Shipped++
		case model.StatusCompleted:
			s.Completed++
		case model.StatusCancelled:
			s.Cancelled++
		}
		if o.Status != model.StatusCancelled {
			s.TotalAmount += o.Total
		}
	}
	return s
}
