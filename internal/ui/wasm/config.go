package wasm

import (
	"strings"

	"github.com/Its-donkey/webstay/internal/i18n"
	"github.com/Its-donkey/webstay/internal/ui/components"
	"github.com/Its-donkey/webstay/internal/ui/forms"
	"github.com/Its-donkey/webstay/internal/ui/model"
)

// clientConfig reads the app root's dataset. data returns "" for missing keys.
func clientConfig(data func(key string) string) components.ClientConfig {
	get := func(key string) string { return strings.TrimSpace(data(key)) }
	locale := get("locale")
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	return components.ClientConfig{
		Variant:        forms.ParseVariant(get("variant")),
		Gate:           get("gate"),
		NotifyURL:      get("notifyUrl"),
		CheckoutURL:    get("checkoutUrl"),
		Plan:           get("plan"),
		PublishableKey: get("stripeKey"),
		Locale:         locale,
		WASM:           true,
	}
}

// fieldForInput maps a DOM input id to its form field.
func fieldForInput(id string) (string, bool) {
	for _, field := range model.Fields {
		if field == id {
			return field, true
		}
	}
	return "", false
}

// restoresSelection reports whether an input of inputType supports
// setSelectionRange; browsers throw for email and number inputs.
func restoresSelection(inputType string) bool {
	switch strings.ToLower(inputType) {
	case "text", "search", "url", "tel", "password", "":
		return true
	default:
		return false
	}
}
