package line

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultPushURL = "https://api.line.me/v2/bot/message/push"

var ErrNoRecipient = errors.New("line recipient is empty")

// Client pushes text messages through the LINE Messaging API. Push
// errors are returned to the caller; delivery is never load-bearing,
// so callers log and move on.
type Client struct {
	token   string
	pushURL string
	http    *http.Client
}

func NewClient(channelAccessToken string) *Client {
	return &Client{
		token:   channelAccessToken,
		pushURL: defaultPushURL,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// NewClientWithURL is used by tests to point at a local server.
func NewClientWithURL(channelAccessToken, pushURL string) *Client {
	c := NewClient(channelAccessToken)
	c.pushURL = pushURL
	return c
}

func (c *Client) Configured() bool {
	return c.token != ""
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// Push sends a single text message to one recipient.
func (c *Client) Push(ctx context.Context, to, text string) error {
	if to == "" {
		return ErrNoRecipient
	}
	if !c.Configured() {
		return errors.New("line channel access token not set")
	}

	body, err := json.Marshal(pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pushURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("line push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("line push: status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
