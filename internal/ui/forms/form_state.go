package forms

import (
	"github.com/Its-donkey/webstay/internal/ui/model"
)

// NewSignupForm returns an empty, idle, online form for the rules' variant.
func (r Rules) NewSignupForm() model.SignupForm {
	return model.SignupForm{
		Variant: r.Variant,
		Status:  model.StatusIdle,
		Online:  true,
	}
}

// SetField stores a raw value and recomputes only that field's validity.
// It reports false for unknown fields.
func (r Rules) SetField(form *model.SignupForm, field, value string) bool {
	switch field {
	case model.FieldName:
		form.Values.Name = value
		form.Valid.Name = ValidName(value)
	case model.FieldEmail:
		form.Values.Email = value
		form.Valid.Email = ValidEmail(value)
	case model.FieldAge:
		form.Values.Age = value
		form.Valid.Age = r.ValidAge(value)
	case model.FieldAccessCode:
		form.Values.AccessCode = value
		if r.Variant != model.VariantB {
			form.Valid.Access = r.ValidAccess(value, "")
		}
	default:
		return false
	}
	return true
}

// SetFragment records the page's URL fragment. Under variant B it drives
// the access gate; under variant A it is ignored.
func (r Rules) SetFragment(form *model.SignupForm, fragment string) {
	form.Fragment = fragment
	if r.Variant == model.VariantB {
		form.Valid.Access = r.ValidAccess("", fragment)
	}
}

// Revalidate recomputes every validity flag from the stored values.
func (r Rules) Revalidate(form *model.SignupForm) {
	form.Valid = r.Validate(form.Values, form.Fragment)
}

// SetOnline mirrors the browser's connectivity signal.
func SetOnline(form *model.SignupForm, online bool) {
	form.Online = online
}

// CanSubmit reports whether the submit trigger is enabled: every field
// valid, online, and no submission in flight.
func CanSubmit(form model.SignupForm) bool {
	return form.Valid.All() && form.Online && form.Status == model.StatusIdle
}

// FieldsVisible reports whether the name/email/age inputs are rendered.
// Variant A hides them until the access code matches.
func FieldsVisible(form model.SignupForm) bool {
	if form.Variant == model.VariantB {
		return true
	}
	return form.Valid.Access
}

// FieldState is the tri-state border of an input.
type FieldState string

const (
	FieldEmpty   FieldState = "empty"
	FieldValid   FieldState = "valid"
	FieldInvalid FieldState = "invalid"
)

// StateOf returns the border state of field.
func StateOf(form model.SignupForm, field string) FieldState {
	if form.Values.Get(field) == "" {
		return FieldEmpty
	}
	if form.Valid.Get(field) {
		return FieldValid
	}
	return FieldInvalid
}
