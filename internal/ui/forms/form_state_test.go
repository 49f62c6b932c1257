package forms

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Its-donkey/webstay/internal/ui/model"
)

func filledForm(rules Rules) model.SignupForm {
	form := rules.NewSignupForm()
	rules.SetField(&form, model.FieldName, "Anna")
	rules.SetField(&form, model.FieldEmail, "anna@example.se")
	rules.SetField(&form, model.FieldAge, "30")
	rules.SetField(&form, model.FieldAccessCode, rules.Secret)
	rules.SetFragment(&form, rules.Secret)
	return form
}

func TestCanSubmit(t *testing.T) {
	rules := RulesFor(model.VariantA, "")
	cases := []struct {
		name   string
		mutate func(*model.SignupForm)
		want   bool
	}{
		{"ready", func(*model.SignupForm) {}, true},
		{"offline", func(f *model.SignupForm) { SetOnline(f, false) }, false},
		{"processing", func(f *model.SignupForm) { f.Status = model.StatusProcessing }, false},
		{"redirecting", func(f *model.SignupForm) { f.Status = model.StatusRedirecting }, false},
		{"bad email", func(f *model.SignupForm) { rules.SetField(f, model.FieldEmail, "anna@") }, false},
		{"too old", func(f *model.SignupForm) { rules.SetField(f, model.FieldAge, "51") }, false},
		{"wrong code", func(f *model.SignupForm) { rules.SetField(f, model.FieldAccessCode, "nope") }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := filledForm(rules)
			tc.mutate(&form)
			if got := CanSubmit(form); got != tc.want {
				t.Fatalf("expected CanSubmit=%v, got %v (%+v)", tc.want, got, form)
			}
		})
	}
}

func TestSetFieldOnlyTouchesThatField(t *testing.T) {
	rules := RulesFor(model.VariantA, "")
	form := rules.NewSignupForm()
	rules.SetField(&form, model.FieldEmail, "x")
	rules.SetField(&form, model.FieldName, "Anna")
	want := model.ValidityState{Name: true}
	if diff := cmp.Diff(want, form.Valid); diff != "" {
		t.Fatalf("validity mismatch (-want +got):\n%s", diff)
	}
	if rules.SetField(&form, "phone", "1") {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestVariantAGateTogglingKeepsValues(t *testing.T) {
	rules := RulesFor(model.VariantA, "")
	form := filledForm(rules)
	before := form.Values

	rules.SetField(&form, model.FieldAccessCode, "wrong")
	if FieldsVisible(form) {
		t.Fatalf("expected fields hidden once the code stops matching")
	}
	rules.SetField(&form, model.FieldAccessCode, rules.Secret)
	if !FieldsVisible(form) {
		t.Fatalf("expected fields visible again")
	}
	if diff := cmp.Diff(before, form.Values); diff != "" {
		t.Fatalf("values changed across gate toggle (-want +got):\n%s", diff)
	}
	if !CanSubmit(form) {
		t.Fatalf("expected form ready after unlocking again")
	}
}

func TestVariantBGateFollowsFragment(t *testing.T) {
	rules := RulesFor(model.VariantB, "#invite")
	form := filledForm(rules)
	if !form.Valid.Access || !FieldsVisible(form) {
		t.Fatalf("expected fragment to unlock variant B, got %+v", form.Valid)
	}
	rules.SetFragment(&form, "#other")
	if form.Valid.Access {
		t.Fatalf("expected hashchange to relock the gate")
	}
	if !FieldsVisible(form) {
		t.Fatalf("expected variant B fields to stay visible")
	}
	rules.SetField(&form, model.FieldAccessCode, "#invite")
	if form.Valid.Access {
		t.Fatalf("expected access code field to be ignored by variant B")
	}
	rules.SetFragment(&form, "#invite")
	if form.Values.Name != "Anna" || !CanSubmit(form) {
		t.Fatalf("expected values kept and form ready, got %+v", form)
	}
}

func TestRevalidate(t *testing.T) {
	rules := RulesFor(model.VariantA, "")
	form := rules.NewSignupForm()
	form.Values = model.FormState{Name: "Anna", Email: "anna@example.se", Age: "14", AccessCode: rules.Secret}
	rules.Revalidate(&form)
	if !form.Valid.All() {
		t.Fatalf("expected all flags after revalidate, got %+v", form.Valid)
	}
}

func TestStateOf(t *testing.T) {
	rules := RulesFor(model.VariantA, "")
	form := rules.NewSignupForm()
	if got := StateOf(form, model.FieldName); got != FieldEmpty {
		t.Fatalf("expected empty, got %s", got)
	}
	rules.SetField(&form, model.FieldName, "A")
	if got := StateOf(form, model.FieldName); got != FieldInvalid {
		t.Fatalf("expected invalid, got %s", got)
	}
	rules.SetField(&form, model.FieldName, "Al")
	if got := StateOf(form, model.FieldName); got != FieldValid {
		t.Fatalf("expected valid, got %s", got)
	}
}
