// Package sms sends broadcast messages through an external HTTP gateway.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

// Result describes the provider's response to a send.
type Result struct {
	// Status is the provider-reported delivery status, e.g. "queued".
	Status string
	// ProviderRef is the provider's identifier for the batch, when given.
	ProviderRef string
}

// Gateway delivers one message to a set of recipients.
type Gateway interface {
	Send(ctx context.Context, message string, recipients []string, cred domain.SmsCredential) (*Result, error)
}

// Client talks to a Semaphore-style gateway: a form-encoded POST carrying
// the API key, sender name, comma-joined recipient numbers and the message.
type Client struct {
	// BaseURL is the gateway endpoint, e.g. "https://api.semaphore.co/api/v4".
	BaseURL string

	httpc *http.Client
}

// NewClient constructs a Client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

type providerMessage struct {
	MessageID json.Number `json:"message_id"`
	Status    string      `json:"status"`
}

// Send posts the broadcast and reports the provider's status for the batch.
func (c *Client) Send(ctx context.Context, message string, recipients []string, cred domain.SmsCredential) (*Result, error) {
	form := url.Values{}
	form.Set("apikey", cred.ApiKey)
	form.Set("number", strings.Join(recipients, ","))
	form.Set("message", message)
	if cred.SenderName != "" {
		form.Set("sendername", cred.SenderName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/messages", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sms gateway: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var msgs []providerMessage
	if err := json.Unmarshal(body, &msgs); err != nil || len(msgs) == 0 {
		// Provider accepted the batch but returned an unexpected shape.
		return &Result{Status: "sent"}, nil
	}
	return &Result{Status: msgs[0].Status, ProviderRef: msgs[0].MessageID.String()}, nil
}
