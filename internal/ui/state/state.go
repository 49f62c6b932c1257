package state

import (
	"github.com/Its-donkey/webstay/internal/ui/components"
	"github.com/Its-donkey/webstay/internal/ui/forms"
	"github.com/Its-donkey/webstay/internal/ui/model"
)

var (
	// Client is the configuration the wasm client read from the page.
	Client components.ClientConfig

	// Rules are the validation rules of the configured variant.
	Rules = forms.RulesFor(model.VariantA, "")

	// Signup holds the reactive state of the signup form. It lives for the
	// lifetime of the page; a reload starts over.
	Signup = Rules.NewSignupForm()
)

// Reset replaces the form state for client's variant.
func Reset(client components.ClientConfig) {
	Client = client
	Rules = forms.RulesFor(client.Variant, client.Gate)
	Signup = Rules.NewSignupForm()
}
