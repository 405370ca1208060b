// Package mailer delivers transactional email through a Resend-compatible HTTPS API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is a single outbound email. ReplyTo, when set, lets the recipient
// answer the person the notification is about rather than the service address.
type Message struct {
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Client talks to the email provider's REST API. A client with an empty API
// key is disabled and drops messages silently, which keeps local development
// and tests from needing provider credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	from       string
}

// NewClient creates a mail client. baseURL should not end with a slash.
func NewClient(baseURL, apiKey, from string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		from:       from,
	}
}

// Enabled reports whether the client has credentials to deliver mail.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Send delivers one message. Each call carries a fresh idempotency key so the
// provider can dedupe retries of the same HTTP request without collapsing
// distinct notifications.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
