// Package notify relays signup notifications to the operator's messaging
// webhook.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Its-donkey/webstay/internal/ui/model"
)

// ErrUnexpectedStatus is wrapped when the webhook answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("notification webhook returned unexpected status")

// Client posts {message} payloads to a single webhook URL.
type Client struct {
	http     *resty.Client
	endpoint string
}

// NewClient returns a client for endpoint. httpClient may be nil; a zero
// timeout leaves requests bounded only by their context.
func NewClient(endpoint string, httpClient *http.Client, timeout time.Duration) *Client {
	rc := resty.New()
	if httpClient != nil {
		rc = resty.NewWithClient(httpClient)
	}
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	rc.SetRetryCount(0)
	return &Client{http: rc, endpoint: strings.TrimSpace(endpoint)}
}

// Notify sends req. Any 2xx counts as delivered; the body is ignored.
func (c *Client) Notify(ctx context.Context, req model.NotificationRequest) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}
	return nil
}
