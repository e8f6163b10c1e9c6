package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pitak-order-api/internal/model"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
)

// ErrUnavailable means the client was constructed without a token or
// database id. The server still boots in that state (health reports
// it), but every store call fails with this error.
var ErrUnavailable = errors.New("notion is not configured")

// Client talks to the Notion REST API and maps orders to and from the
// database's typed properties.
type Client struct {
	token      string
	databaseID string
	baseURL    string
	http       *http.Client
}

func NewClient(token, databaseID string) *Client {
	return &Client{
		token:      token,
		databaseID: databaseID,
		baseURL:    defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(token, databaseID, baseURL string) *Client {
	c := NewClient(token, databaseID)
	c.baseURL = baseURL
	return c
}

func (c *Client) Available() bool {
	return c.token != "" && c.databaseID != ""
}

type titleFilter struct {
	Equals string `json:"equals"`
}

type queryFilter struct {
	Property string       `json:"property"`
	Title    *titleFilter `json:"title,omitempty"`
}

type querySort struct {
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
}

type queryRequest struct {
	Filter *queryFilter `json:"filter,omitempty"`
	Sorts  []querySort  `json:"sorts,omitempty"`
}

type queryResponse struct {
	Results []page `json:"results"`
}

type createPageRequest struct {
	Parent struct {
		DatabaseID string `json:"database_id"`
	} `json:"parent"`
	Properties map[string]property `json:"properties"`
}

type updatePageRequest struct {
	Properties map[string]property `json:"properties"`
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	if !c.Available() {
		return ErrUnavailable
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notion %s %s: status %d: %s", method, url, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// FindByOrderID does a filtered point lookup on the Order ID title
// property. Returns (nil, nil) when no record matches.
func (c *Client) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	req := queryRequest{
		Filter: &queryFilter{
			Property: propOrderID,
			Title:    &titleFilter{Equals: orderID},
		},
	}

	var resp queryResponse
	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, c.databaseID)
	if err := c.do(ctx, http.MethodPost, url, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return parseOrder(resp.Results[0]), nil
}

// Create persists a new order page and returns it with the page id
// and creation time assigned by Notion.
func (c *Client) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	req := createPageRequest{Properties: orderProperties(o)}
	req.Parent.DatabaseID = c.databaseID

	var created page
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/pages", req, &created); err != nil {
		return nil, err
	}
	return parseOrder(created), nil
}

// UpdateStatus rewrites only the Status select of an existing page.
func (c *Client) UpdateStatus(ctx context.Context, recordID string, status model.Status) error {
	req := updatePageRequest{
		Properties: map[string]property{
			propStatus: selectProp(string(status)),
		},
	}
	return c.do(ctx, http.MethodPatch, c.baseURL+"/pages/"+recordID, req, nil)
}

// UpdateSlipURL rewrites only the SlipUrl property of an existing page.
func (c *Client) UpdateSlipURL(ctx context.Context, recordID, slipURL string) error {
	req := updatePageRequest{
		Properties: map[string]property{
			propSlipURL: urlProp(slipURL),
		},
	}
	return c.do(ctx, http.MethodPatch, c.baseURL+"/pages/"+recordID, req, nil)
}

// List returns every order sorted by creation time descending. The
// sort happens store-side, callers aggregate in memory.
func (c *Client) List(ctx context.Context) ([]*model.Order, error) {
	req := queryRequest{
		Sorts: []querySort{{Timestamp: "created_time", Direction: "descending"}},
	}

	var resp queryResponse
	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, c.databaseID)
	if err := c.do(ctx, http.MethodPost, url, req, &resp); err != nil {
		return nil, err
	}

	orders := make([]*model.Order, 0, len(resp.Results))
	for _, p := range resp.Results {
		orders = append(orders, parseOrder(p))
	}
	return orders, nil
}
