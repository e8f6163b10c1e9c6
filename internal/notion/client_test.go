package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitak-order-api/internal/model"
)

func pagePayload(id, orderID string) map[string]any {
	return map[string]any{
		"id":           id,
		"created_time": "2026-01-15T09:30:00.000Z",
		"properties": map[string]any{
			"Order ID": map[string]any{
				"title": []any{map[string]any{"plain_text": orderID}},
			},
			"Customer": map[string]any{
				"rich_text": []any{map[string]any{"plain_text": "Somchai"}},
			},
			"Phone":    map[string]any{"phone_number": "0812345678"},
			"Amulet":   map[string]any{"rich_text": []any{map[string]any{"plain_text": "Bronze"}}},
			"Quantity": map[string]any{"number": 2},
			"Price":    map[string]any{"number": 500},
			"Total":    map[string]any{"number": 1000},
			"Status":   map[string]any{"select": map[string]any{"name": "paid"}},
			"SlipUrl":  map[string]any{"url": "https://files.example/slip.jpg"},
			"LineUserId": map[string]any{
				"rich_text": []any{map[string]any{"plain_text": "U1234"}},
			},
		},
	}
}

func TestFindByOrderID(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases/db-1/query", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("Notion-Version"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []any{pagePayload("page-1", "A100")},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", "db-1", srv.URL)
	o, err := c.FindByOrderID(context.Background(), "A100")
	require.NoError(t, err)
	require.NotNil(t, o)

	// the filter is a title-equals point lookup
	filter := gotBody["filter"].(map[string]any)
	assert.Equal(t, "Order ID", filter["property"])
	assert.Equal(t, "A100", filter["title"].(map[string]any)["equals"])

	assert.Equal(t, "page-1", o.RecordID)
	assert.Equal(t, "A100", o.OrderID)
	assert.Equal(t, "Somchai", o.CustomerName)
	assert.Equal(t, "0812345678", o.Phone)
	assert.Equal(t, "Bronze", o.AmuletName)
	assert.Equal(t, 2, o.Quantity)
	assert.Equal(t, float64(500), o.Price)
	assert.Equal(t, float64(1000), o.Total)
	assert.Equal(t, model.StatusPaid, o.Status)
	assert.Equal(t, "https://files.example/slip.jpg", o.SlipURL)
	assert.Equal(t, "U1234", o.LineUserID)
	assert.Equal(t, time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC), o.CreatedAt)
}

func TestFindByOrderID_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", "db-1", srv.URL)
	o, err := c.FindByOrderID(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestCreate_MarshalsTypedProperties(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(pagePayload("page-9", "A200"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", "db-1", srv.URL)
	created, err := c.Create(context.Background(), &model.Order{
		OrderID:      "A200",
		CustomerName: "Somchai",
		Phone:        "0812345678",
		AmuletName:   "Bronze",
		Quantity:     2,
		Price:        500,
		Total:        1000,
		Status:       model.StatusPending,
		LineUserID:   "U1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "page-9", created.RecordID)

	assert.Equal(t, "db-1", gotBody["parent"].(map[string]any)["database_id"])

	props := gotBody["properties"].(map[string]any)
	title := props["Order ID"].(map[string]any)["title"].([]any)
	assert.Equal(t, "A200",
		title[0].(map[string]any)["text"].(map[string]any)["content"])
	assert.Equal(t, "0812345678", props["Phone"].(map[string]any)["phone_number"])
	assert.Equal(t, float64(1000), props["Total"].(map[string]any)["number"])
	assert.Equal(t, "pending",
		props["Status"].(map[string]any)["select"].(map[string]any)["name"])

	// no slip yet, the url property must not be written
	_, hasSlip := props["SlipUrl"]
	assert.False(t, hasSlip)
}

func TestUpdateStatus(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/pages/page-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", "db-1", srv.URL)
	require.NoError(t, c.UpdateStatus(context.Background(), "page-1", model.StatusShipped))

	props := gotBody["properties"].(map[string]any)
	require.Len(t, props, 1)
	assert.Equal(t, "shipped",
		props["Status"].(map[string]any)["select"].(map[string]any)["name"])
}

func TestUpdateSlipURL(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", "db-1", srv.URL)
	require.NoError(t, c.UpdateSlipURL(context.Background(), "page-1", "https://files.example/s.pdf"))

	props := gotBody["properties"].(map[string]any)
	require.Len(t, props, 1)
	assert.Equal(t, "https://files.example/s.pdf", props["SlipUrl"].(map[string]any)["url"])
}

func TestList_SortsByCreationDescending(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []any{
				pagePayload("page-2", "A101"),
				pagePayload("page-1", "A100"),
			},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", "db-1", srv.URL)
	orders, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "A101", orders[0].OrderID)

	sorts := gotBody["sorts"].([]any)
	require.Len(t, sorts, 1)
	assert.Equal(t, "created_time", sorts[0].(map[string]any)["timestamp"])
	assert.Equal(t, "descending", sorts[0].(map[string]any)["direction"])
}

func TestUnconfiguredClient(t *testing.T) {
	c := NewClient("", "")
	assert.False(t, c.Available())

	_, err := c.FindByOrderID(context.Background(), "A100")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = c.List(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"validation_error"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", "db-1", srv.URL)
	_, err := c.FindByOrderID(context.Background(), "A100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
