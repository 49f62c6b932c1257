package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Its-donkey/webstay/internal/ui/model"
)

// AppRootID is the element carrying the client configuration.
const AppRootID = "signup-app"

// ClientConfig is handed to the wasm client through data attributes on the
// app root, so it is public. The Stripe secret key never goes here.
type ClientConfig struct {
	Variant        model.Variant
	Gate           string
	NotifyURL      string
	CheckoutURL    string
	Plan           string
	PublishableKey string
	Locale         string
	WASM           bool
}

// Page renders the full landing page.
func Page(config ClientConfig, view SignupView) g.Node {
	p := view.Printer
	return Layout(
		PageConfig{
			Lang:        config.Locale,
			Title:       p.Sprintf("page.title"),
			Description: p.Sprintf("page.description"),
			StripeJS:    config.WASM && config.PublishableKey != "",
			WASM:        config.WASM,
		},
		Main(
			ID(AppRootID),
			Class("signup-page"),
			Data("variant", string(config.Variant)),
			Data("gate", config.Gate),
			Data("notify-url", config.NotifyURL),
			Data("checkout-url", config.CheckoutURL),
			Data("plan", config.Plan),
			Data("stripe-key", config.PublishableKey),
			Data("locale", config.Locale),
			Hero(p),
			FeatureGrid(DefaultFeatures(p)),
			SignupCard(view),
		),
	)
}
