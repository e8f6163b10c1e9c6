// dto_test.go
package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pitak-order-api/internal/model"
)

func TestSummarize(t *testing.T) {
	orders := []*model.Order{
		{OrderID: "A1", Status: model.StatusPending, Total: 1000},
		{OrderID: "A2", Status: model.StatusPaid, Total: 500},
		{OrderID: "A3", Status: model.StatusPaid, Total: 2500},
		{OrderID: "A4", Status: model.StatusShipped, Total: 300},
		{OrderID: "A5", Status: model.StatusCompleted, Total: 900},
		{OrderID: "A6", Status: model.StatusCancelled, Total: 9999},
	}

	s := Summarize(orders)

	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 2, s.Paid)
	assert.Equal(t, 1, s.Shipped)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Cancelled)

	// cancelled orders do not count towards revenue
	assert.Equal(t, float64(5200), s.TotalAmount)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, float64(0), s.TotalAmount)
}

func TestFromOrder(t *testing.T) {
	o := &model.Order{
		OrderID:      "A100",
		RecordID:     "page-1",
		CustomerName: "Somchai",
		Status:       model.StatusPaid,
		Quantity:     2,
		Price:        500,
		Total:        1000,
	}

	resp := FromOrder(o)
	assert.Equal(t, "A100", resp.OrderID)
	assert.Equal(t, "paid", resp.Status)
	assert.Equal(t, float64(1000), resp.Total)
}
