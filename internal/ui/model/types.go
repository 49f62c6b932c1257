package model

// Field names used by the signup form, both as DOM ids and form keys.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldAge        = "age"
	FieldAccessCode = "accessCode"
)

// Fields lists the form fields in render order.
var Fields = []string{FieldAccessCode, FieldName, FieldEmail, FieldAge}

// Variant selects how the access gate and age bounds behave.
type Variant string

const (
	// VariantA gates the form behind an access code field.
	VariantA Variant = "A"
	// VariantB gates the form on the page's URL fragment.
	VariantB Variant = "B"
)

// Status is the submission lifecycle of the signup form.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusProcessing  Status = "processing"
	StatusRedirecting Status = "redirecting"
)

// FormState holds the raw field values as typed by the visitor.
type FormState struct {
	Name       string
	Email      string
	Age        string
	AccessCode string
}

// Get returns the raw value for a field name.
func (f FormState) Get(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldAge:
		return f.Age
	case FieldAccessCode:
		return f.AccessCode
	default:
		return ""
	}
}

// ValidityState holds the derived per-field validity flags.
type ValidityState struct {
	Name   bool
	Email  bool
	Age    bool
	Access bool
}

// Get returns the validity flag for a field name. The access code field maps
// onto the access gate flag regardless of variant.
func (v ValidityState) Get(field string) bool {
	switch field {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldAge:
		return v.Age
	case FieldAccessCode:
		return v.Access
	default:
		return false
	}
}

// All reports whether every flag is set.
func (v ValidityState) All() bool {
	return v.Name && v.Email && v.Age && v.Access
}

// SignupForm is the full client-side state of the signup page.
type SignupForm struct {
	Variant  Variant
	Values   FormState
	Valid    ValidityState
	Status   Status
	Online   bool
	Fragment string
	Error    string
}

// NotificationRequest is posted to the operator notification endpoint.
type NotificationRequest struct {
	Message string `json:"message"`
}

// CheckoutRequest is posted to the checkout-session endpoint.
type CheckoutRequest struct {
	Plan  string `json:"plan"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CheckoutSession is the checkout-session endpoint's success response.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url,omitempty"`
}

// FeatureCard describes one of the marketing cards above the form.
type FeatureCard struct {
	Icon        string
	Title       string
	Description string
}
