//go:build js && wasm

package wasm

import (
	"context"
	"syscall/js"

	"github.com/Its-donkey/webstay/internal/checkout"
	"github.com/Its-donkey/webstay/internal/i18n"
	"github.com/Its-donkey/webstay/internal/notify"
	"github.com/Its-donkey/webstay/internal/ui/components"
	"github.com/Its-donkey/webstay/internal/ui/forms"
	"github.com/Its-donkey/webstay/internal/ui/state"
	"github.com/Its-donkey/webstay/logging"
)

var (
	// Document references the global browser document for DOM interactions.
	Document js.Value

	submitter      *forms.Submitter
	windowHandlers []listener
)

// listener is an event listener that can be removed and released again.
type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

func listen(target js.Value, event string, handler func(js.Value, []js.Value) any) listener {
	fn := js.FuncOf(handler)
	target.Call("addEventListener", event, fn)
	return listener{target: target, event: event, fn: fn}
}

func (l listener) release() {
	l.target.Call("removeEventListener", l.event, l.fn)
	l.fn.Release()
}

// RunApp bootstraps the signup client and blocks until the page goes away.
func RunApp() {
	done := make(chan struct{})
	window := js.Global()
	Document = window.Get("document")

	root := Document.Call("getElementById", components.AppRootID)
	if !root.Truthy() {
		window.Get("console").Call("error", "signup app root missing")
		return
	}
	dataset := root.Get("dataset")
	state.Reset(clientConfig(func(key string) string {
		value := dataset.Get(key)
		if value.Type() != js.TypeString {
			return ""
		}
		return value.String()
	}))

	state.Rules.SetFragment(&state.Signup, window.Get("location").Get("hash").String())
	if online := window.Get("navigator").Get("onLine"); online.Type() == js.TypeBoolean {
		forms.SetOnline(&state.Signup, online.Bool())
	}

	logger := logging.New("wasm", logging.INFO)
	submitter = &forms.Submitter{
		Notifier:   notify.NewClient(state.Client.NotifyURL, nil, 0),
		Sessions:   checkout.NewClient(state.Client.CheckoutURL),
		Redirector: stripeRedirector{publishableKey: state.Client.PublishableKey},
		Plan:       state.Client.Plan,
		Printer:    i18n.MustLoad().Printer(state.Client.Locale),
		Logger:     logger,
		OnChange:   scheduleRender,
	}

	bindWindowEvents(done)
	RenderSignupForm()
	logger.Info(logging.CategorySignup, "signup client ready", map[string]any{
		"variant": string(state.Client.Variant),
	})
	<-done
	releaseFormHandlers()
}

func bindWindowEvents(done chan struct{}) {
	window := js.Global()
	windowHandlers = append(windowHandlers,
		listen(window, "online", func(js.Value, []js.Value) any {
			forms.SetOnline(&state.Signup, true)
			RenderSignupForm()
			return nil
		}),
		listen(window, "offline", func(js.Value, []js.Value) any {
			forms.SetOnline(&state.Signup, false)
			RenderSignupForm()
			return nil
		}),
		listen(window, "hashchange", func(js.Value, []js.Value) any {
			state.Rules.SetFragment(&state.Signup, window.Get("location").Get("hash").String())
			RenderSignupForm()
			return nil
		}),
		listen(window, "pagehide", func(js.Value, []js.Value) any {
			releaseWindowHandlers()
			close(done)
			return nil
		}),
	)
}

// releaseWindowHandlers detaches the connectivity and fragment listeners.
func releaseWindowHandlers() {
	for _, l := range windowHandlers {
		l.release()
	}
	windowHandlers = nil
}

func submit() {
	if !forms.CanSubmit(state.Signup) {
		return
	}
	go func() {
		// Failures are already on the form and in the log.
		_ = submitter.Submit(context.Background(), &state.Signup)
	}()
}
