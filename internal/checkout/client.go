// Package checkout creates hosted checkout sessions and resolves where the
// visitor has to be sent to pay for them.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Its-donkey/webstay/internal/ui/model"
)

// StatusError is returned when the checkout endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("checkout endpoint returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("checkout endpoint returned %d", e.StatusCode)
}

// DecodeError is returned when a 2xx response does not carry a session.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode checkout session: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// PaymentError is an error reported by the payment provider itself. Message
// is the provider's human-readable text and is safe to show to the visitor.
type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment provider: %s (%s)", e.Message, e.Code)
	}
	return "payment provider: " + e.Message
}

func (e *PaymentError) Unwrap() error { return e.Err }

// Client posts checkout-session requests to a fixed endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
}

type clientOptions struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*clientOptions)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// NewClient returns a client for endpoint. Requests are never retried.
func NewClient(endpoint string, opts ...Option) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	rc := resty.New()
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	}
	if o.timeout > 0 {
		rc.SetTimeout(o.timeout)
	}
	rc.SetRetryCount(0)
	rc.SetHeader("Accept", "application/json")
	return &Client{http: rc, endpoint: strings.TrimSpace(endpoint)}
}

// CreateSession posts {plan, name, email} and returns the issued session.
func (c *Client) CreateSession(ctx context.Context, req model.CheckoutRequest) (model.CheckoutSession, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(c.endpoint)
	if err != nil {
		return model.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	if !resp.IsSuccess() {
		return model.CheckoutSession{}, &StatusError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(string(resp.Body())),
		}
	}

	var session model.CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return model.CheckoutSession{}, &DecodeError{Err: err}
	}
	session.SessionID = strings.TrimSpace(session.SessionID)
	if session.SessionID == "" {
		return model.CheckoutSession{}, &DecodeError{Err: fmt.Errorf("response has no sessionId")}
	}
	return session, nil
}
