package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Its-donkey/webstay/internal/ui/model"
)

func TestCreateSessionPostsPlanNameEmail(t *testing.T) {
	var got model.CheckoutRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sessionId":"cs_test_123"}`))
	}))
	defer srv.Close()

	session, err := NewClient(srv.URL, WithTimeout(time.Second)).CreateSession(context.Background(), model.CheckoutRequest{
		Plan:  "testuser-plan",
		Name:  "Anna",
		Email: "anna@example.se",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.SessionID)
	assert.Equal(t, model.CheckoutRequest{Plan: "testuser-plan", Name: "Anna", Email: "anna@example.se"}, got)
}

func TestCreateSessionReturnsStatusErrorWithoutRetrying(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "plan unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateSession(context.Background(), model.CheckoutRequest{Plan: "p"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "plan unavailable", statusErr.Body)
	assert.EqualValues(t, 1, calls.Load())
}

func TestCreateSessionRejectsMalformedBodies(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      `<html>oops</html>`,
		"no session id": `{"sessionId":"  "}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).CreateSession(context.Background(), model.CheckoutRequest{})
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestCreateSessionTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, WithHTTPClient(&http.Client{Timeout: time.Second})).CreateSession(context.Background(), model.CheckoutRequest{})
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestStripeResolverReturnsHostedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_test_123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_123","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_123"}`))
	}))
	defer srv.Close()

	url, err := NewStripeResolver("sk_test_key", srv.URL, srv.Client()).CheckoutURL(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", url)
}

func TestStripeResolverSurfacesProviderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such checkout.session: 'cs_missing'"}}`))
	}))
	defer srv.Close()

	_, err := NewStripeResolver("sk_test_key", srv.URL, srv.Client()).CheckoutURL(context.Background(), "cs_missing")
	var paymentErr *PaymentError
	require.ErrorAs(t, err, &paymentErr)
	assert.Equal(t, "No such checkout.session: 'cs_missing'", paymentErr.Message)
	assert.Equal(t, "resource_missing", paymentErr.Code)
}

func TestStripeResolverRequiresHostedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_done","object":"checkout.session","url":null}`))
	}))
	defer srv.Close()

	_, err := NewStripeResolver("sk_test_key", srv.URL, srv.Client()).CheckoutURL(context.Background(), "cs_done")
	var paymentErr *PaymentError
	require.ErrorAs(t, err, &paymentErr)
}
