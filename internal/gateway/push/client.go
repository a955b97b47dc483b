package push

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

// ErrInvalidToken signals a permanent delivery failure: the token is
// unregistered or malformed and will never work again. The dispatcher reacts
// by deleting the stored token record.
var ErrInvalidToken = errors.New("push token invalid")

// Notification is one push delivery request.
type Notification struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Client talks to the push-delivery service over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a push client. A zero timeout falls back to 2s.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Send delivers one notification. Permanent invalid-token failures come back
// as ErrInvalidToken; everything else is a transient error.
func (c *Client) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("push: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("push: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var er errorResponse
	_ = json.Unmarshal(body, &er)

	if isPermanent(resp.StatusCode, er.Error) {
		return fmt.Errorf("push: %s: %w", er.Error, ErrInvalidToken)
	}
	return fmt.Errorf("push: status %d: %s", resp.StatusCode, er.Error)
}

// isPermanent classifies a failed delivery. The push service reports
// unregistered tokens with 404/410 or a matching error code.
func isPermanent(status int, code string) bool {
	if status == http.StatusNotFound || status == http.StatusGone {
		return true
	}
	switch code {
	case "unregistered", "invalid_token":
		return true
	}
	return false
}

// IsInvalidToken reports whether the delivery failed permanently because of
// the token.
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
