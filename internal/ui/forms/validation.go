package forms

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Its-donkey/webstay/internal/ui/model"
)

// Built-in gate secrets. They ship to the browser, so they only keep casual
// visitors out; deployments override them through configuration.
const (
	DefaultAccessCode     = "#175617fha462462655sf"
	DefaultFragmentSecret = "#webstay-beta-invite"
)

// The class matches what browsers treat as whitespace: ASCII space, \v, the
// Unicode separators and the byte order mark.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// Rules holds the per-variant validation parameters.
type Rules struct {
	Variant model.Variant
	MinAge  int
	MaxAge  int
	Secret  string
}

// RulesFor returns the rules of variant. An empty secret selects the
// built-in one; unknown variants fall back to A.
func RulesFor(variant model.Variant, secret string) Rules {
	secret = strings.TrimSpace(secret)
	if variant == model.VariantB {
		if secret == "" {
			secret = DefaultFragmentSecret
		}
		return Rules{Variant: model.VariantB, MinAge: 16, MaxAge: 120, Secret: secret}
	}
	if secret == "" {
		secret = DefaultAccessCode
	}
	return Rules{Variant: model.VariantA, MinAge: 14, MaxAge: 50, Secret: secret}
}

// ParseVariant maps a config value to a Variant.
func ParseVariant(value string) model.Variant {
	if strings.EqualFold(strings.TrimSpace(value), string(model.VariantB)) {
		return model.VariantB
	}
	return model.VariantA
}

// ValidName reports whether the trimmed name has at least two characters.
func ValidName(value string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= 2
}

// ValidEmail accepts a local@domain.tld shape; it is not an RFC 5322 check.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// ValidAge reports whether value is an integer within the inclusive bounds.
func (r Rules) ValidAge(value string) bool {
	age, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return age >= r.MinAge && age <= r.MaxAge
}

// ValidAccess checks the gate: the access code for variant A, the URL
// fragment for variant B. Both are exact matches.
func (r Rules) ValidAccess(accessCode, fragment string) bool {
	if r.Secret == "" {
		return false
	}
	if r.Variant == model.VariantB {
		return fragment == r.Secret
	}
	return accessCode == r.Secret
}

// Validate derives the full validity state from values and the current fragment.
func (r Rules) Validate(values model.FormState, fragment string) model.ValidityState {
	return model.ValidityState{
		Name:   ValidName(values.Name),
		Email:  ValidEmail(values.Email),
		Age:    r.ValidAge(values.Age),
		Access: r.ValidAccess(values.AccessCode, fragment),
	}
}
