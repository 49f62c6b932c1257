package components

import (
	"strconv"
	"strings"

	"golang.org/x/text/message"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/Its-donkey/webstay/internal/ui/forms"
	"github.com/Its-donkey/webstay/internal/ui/model"
)

// FormContainerID is the element the wasm client re-renders the form into.
const FormContainerID = "signup-form-container"

// SignupView is everything the form needs to render itself.
type SignupView struct {
	Printer *message.Printer
	Rules   forms.Rules
	Form    model.SignupForm
}

// SignupCard is the offer banner with the form below it.
func SignupCard(view SignupView) g.Node {
	return Div(
		Class("signup-card"),
		OfferBanner(view.Printer),
		Div(ID(FormContainerID), SignupForm(view)),
	)
}

// SignupForm renders the form for the current state. It posts to /signup
// so it works without the wasm client.
func SignupForm(view SignupView) g.Node {
	p := view.Printer
	form := view.Form

	return Form(
		ID("signup-form"),
		Class("signup-form"),
		Method("post"),
		Action("/signup"),
		g.Attr("novalidate"),
		g.Attr("aria-live", "polite"),
		g.Attr("data-status", string(form.Status)),
		gate(view),
		g.If(forms.FieldsVisible(form), g.Group([]g.Node{
			textField(p, form, model.FieldName, "text", AutoComplete("name")),
			textField(p, form, model.FieldEmail, "email", AutoComplete("email")),
			ageField(view),
		})),
		submitButton(p, form),
		g.If(form.Error != "", Div(Class("form-error"), g.Attr("role", "alert"), g.Text(form.Error))),
		g.If(!form.Online, Div(Class("form-offline"), g.Attr("role", "status"), g.Text(p.Sprintf("error.offline")))),
	)
}

func gate(view SignupView) g.Node {
	p := view.Printer
	form := view.Form
	if view.Rules.Variant == model.VariantB {
		return g.Group([]g.Node{
			Input(Type("hidden"), ID(model.FieldAccessCode), Name(model.FieldAccessCode), Value(form.Fragment)),
			g.If(form.Valid.Access, P(Class("gate-badge"), g.Attr("role", "status"), g.Text(p.Sprintf("gate.confirmed")))),
			g.If(!form.Valid.Access, P(Class("gate-locked"), g.Text(p.Sprintf("gate.locked")))),
		})
	}
	return textField(p, form, model.FieldAccessCode, "text", AutoComplete("off"))
}

func textField(p *message.Printer, form model.SignupForm, field, inputType string, extra ...g.Node) g.Node {
	return Div(
		Class("form-field"),
		Label(For(field), g.Text(p.Sprintf("field."+field+".label"))),
		Input(
			Type(inputType),
			ID(field),
			Name(field),
			Value(form.Values.Get(field)),
			Placeholder(p.Sprintf("field."+field+".placeholder")),
			Required(),
			stateClasses(form, field),
			g.Group(extra),
		),
	)
}

func ageField(view SignupView) g.Node {
	p := view.Printer
	rules := view.Rules
	return Div(
		Class("form-field"),
		Label(For(model.FieldAge), g.Text(p.Sprintf("field.age.label", rules.MinAge, rules.MaxAge))),
		Input(
			Type("number"),
			ID(model.FieldAge),
			Name(model.FieldAge),
			Value(view.Form.Values.Age),
			Placeholder(p.Sprintf("field.age.placeholder")),
			Min(strconv.Itoa(rules.MinAge)),
			Max(strconv.Itoa(rules.MaxAge)),
			Required(),
			stateClasses(view.Form, model.FieldAge),
		),
	)
}

func stateClasses(form model.SignupForm, field string) g.Node {
	state := forms.StateOf(form, field)
	return c.Classes{
		"form-input": true,
		"is-valid":   state == forms.FieldValid,
		"is-invalid": state == forms.FieldInvalid,
	}
}

func submitButton(p *message.Printer, form model.SignupForm) g.Node {
	busy := form.Status == model.StatusProcessing || form.Status == model.StatusRedirecting
	return Button(
		Type("submit"),
		ID("signup-submit"),
		Class("signup-submit"),
		g.If(!forms.CanSubmit(form), Disabled()),
		g.If(busy, Span(Class("spinner"), g.Attr("aria-hidden", "true"))),
		g.Text(ButtonLabel(p, form.Status)),
	)
}

// ButtonLabel is the submit trigger's text for status.
func ButtonLabel(p *message.Printer, status model.Status) string {
	switch status {
	case model.StatusProcessing:
		return p.Sprintf("button.processing")
	case model.StatusRedirecting:
		return p.Sprintf("button.redirecting")
	default:
		return p.Sprintf("button.idle")
	}
}

// Render renders node to a string, for innerHTML updates.
func Render(node g.Node) string {
	var b strings.Builder
	_ = node.Render(&b)
	return b.String()
}
