package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// StripeResolver looks up the hosted checkout URL of a session through the
// Stripe API. It is the server-side stand-in for Stripe.js
// redirectToCheckout and needs the secret key.
type StripeResolver struct {
	api *client.API
}

// NewStripeResolver builds a resolver. apiURL overrides the Stripe API base
// URL and may be empty; httpClient may be nil.
func NewStripeResolver(secretKey, apiURL string, httpClient *http.Client) *StripeResolver {
	cfg := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	if apiURL = strings.TrimSpace(apiURL); apiURL != "" {
		cfg.URL = stripe.String(apiURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
	backends := &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	}
	return &StripeResolver{api: client.New(secretKey, backends)}
}

// CheckoutURL returns the URL the visitor must be sent to for sessionID.
// Errors reported by Stripe come back as *PaymentError.
func (s *StripeResolver) CheckoutURL(ctx context.Context, sessionID string) (string, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	session, err := s.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return "", &PaymentError{
				Code:    string(stripeErr.Code),
				Message: stripeErr.Msg,
				Err:     err,
			}
		}
		return "", fmt.Errorf("retrieve checkout session %s: %w", sessionID, err)
	}
	if strings.TrimSpace(session.URL) == "" {
		return "", &PaymentError{Message: fmt.Sprintf("checkout session %s has no hosted URL", sessionID)}
	}
	return session.URL, nil
}
