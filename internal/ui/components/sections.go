package components

import (
	"golang.org/x/text/message"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Its-donkey/webstay/internal/ui/model"
)

func Hero(p *message.Printer) g.Node {
	return Div(
		Class("hero"),
		Div(
			Class("hero-brand"),
			H1(Class("hero-title"), g.Text(p.Sprintf("header.title"))),
			Div(Class("hero-underline")),
		),
		H2(Class("hero-subtitle"), g.Text(p.Sprintf("header.subtitle"))),
		P(Class("hero-tagline"), g.Text(p.Sprintf("header.tagline"))),
	)
}

// DefaultFeatures returns the three feature cards shown above the offer.
func DefaultFeatures(p *message.Printer) []model.FeatureCard {
	return []model.FeatureCard{
		{Icon: "lucide:palette", Title: p.Sprintf("feature.templates.title"), Description: p.Sprintf("feature.templates.description")},
		{Icon: "lucide:shopping-bag", Title: p.Sprintf("feature.commerce.title"), Description: p.Sprintf("feature.commerce.description")},
		{Icon: "lucide:smartphone", Title: p.Sprintf("feature.mobile.title"), Description: p.Sprintf("feature.mobile.description")},
	}
}

func FeatureGrid(cards []model.FeatureCard) g.Node {
	return Div(
		Class("feature-grid"),
		g.Group(g.Map(cards, FeatureCard)),
	)
}

func FeatureCard(card model.FeatureCard) g.Node {
	return Div(
		Class("feature-card"),
		Span(
			Class("feature-icon"),
			g.Attr("data-icon", card.Icon),
			g.Attr("aria-hidden", "true"),
		),
		H3(g.Text(card.Title)),
		P(g.Text(card.Description)),
	)
}

func OfferBanner(p *message.Printer) g.Node {
	return Div(
		Class("offer-banner"),
		H2(g.Text(p.Sprintf("offer.title"))),
		Div(
			Class("offer-price"),
			g.Text(p.Sprintf("offer.price")),
			Span(Class("offer-period"), g.Text(p.Sprintf("offer.period"))),
		),
		P(Class("offer-opens"), g.Text(p.Sprintf("offer.opens"))),
	)
}
