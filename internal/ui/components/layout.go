// Package components renders the signup page with gomponents. The same
// nodes are rendered by the server and by the wasm client.
package components

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// StripeJSURL is where the browser loads Stripe.js from.
const StripeJSURL = "https://js.stripe.com/v3/"

type PageConfig struct {
	Lang        string
	Title       string
	Description string
	// StripeJS loads Stripe.js for the browser-side redirect.
	StripeJS bool
	// WASM boots the interactive client.
	WASM bool
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Lang == "" {
		config.Lang = "sv"
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang(primaryLanguage(config.Lang)),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Link(Rel("stylesheet"), Href("/static/styles.css")),
				g.If(config.StripeJS, Script(Src(StripeJSURL))),
			),
			Body(
				g.Group(content),
				g.If(config.WASM, Script(Src("/wasm_exec.js"))),
				g.If(config.WASM, Script(Src("/static/boot.js"))),
			),
		),
	})
}

func primaryLanguage(locale string) string {
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		return strings.ToLower(locale[:i])
	}
	return strings.ToLower(locale)
}
