//go:build js && wasm

package wasm

import (
	"context"
	"errors"
	"syscall/js"

	"github.com/Its-donkey/webstay/internal/checkout"
	"github.com/Its-donkey/webstay/internal/ui/model"
)

// stripeRedirector hands the visitor to Stripe Checkout through Stripe.js.
type stripeRedirector struct {
	publishableKey string
}

// RedirectToCheckout calls Stripe(key).redirectToCheckout and waits for the
// promise. Stripe only resolves it when the redirect failed.
func (s stripeRedirector) RedirectToCheckout(ctx context.Context, session model.CheckoutSession) error {
	ctor := js.Global().Get("Stripe")
	if ctor.Type() != js.TypeFunction {
		return errors.New("stripe.js is not loaded")
	}
	stripe := ctor.Invoke(s.publishableKey)
	promise := stripe.Call("redirectToCheckout", map[string]any{"sessionId": session.SessionID})

	type outcome struct {
		result js.Value
		err    error
	}
	results := make(chan outcome, 1)
	onResolve := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var result js.Value
		if len(args) > 0 {
			result = args[0]
		}
		results <- outcome{result: result}
		return nil
	})
	onReject := js.FuncOf(func(_ js.Value, args []js.Value) any {
		msg := "redirect to checkout rejected"
		if len(args) > 0 && args[0].Truthy() {
			if m := args[0].Get("message"); m.Type() == js.TypeString {
				msg = m.String()
			}
		}
		results <- outcome{err: errors.New(msg)}
		return nil
	})
	defer onResolve.Release()
	defer onReject.Release()
	promise.Call("then", onResolve, onReject)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case out := <-results:
		if out.err != nil {
			return out.err
		}
		return paymentError(out.result)
	}
}

func paymentError(result js.Value) error {
	if !result.Truthy() {
		return nil
	}
	stripeErr := result.Get("error")
	if !stripeErr.Truthy() {
		return nil
	}
	perr := &checkout.PaymentError{}
	if msg := stripeErr.Get("message"); msg.Type() == js.TypeString {
		perr.Message = msg.String()
	}
	if code := stripeErr.Get("code"); code.Type() == js.TypeString {
		perr.Code = code.String()
	}
	return perr
}
