package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/message"

	"github.com/Its-donkey/webstay/internal/ui/components"
	"github.com/Its-donkey/webstay/internal/ui/forms"
	"github.com/Its-donkey/webstay/internal/ui/model"
	"github.com/Its-donkey/webstay/logging"
)

const maxFormBytes = 16 << 10

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	form := s.rules.NewSignupForm()
	s.renderPage(w, r, form, http.StatusOK)
}

func (s *server) handleSignup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	form := parseSignupForm(s.rules, r)
	locale := s.localeFor(r)
	submitter := &forms.Submitter{
		Notifier:   s.notifier,
		Sessions:   s.sessions,
		Redirector: &httpRedirector{w: w, r: r, resolver: s.resolver},
		Plan:       s.plan,
		Printer:    s.printer(locale),
		Logger:     s.logger,
	}

	err := submitter.Submit(r.Context(), &form)
	switch {
	case err == nil:
		// The redirector has answered with 303.
	case errors.Is(err, forms.ErrNotReady):
		s.renderPage(w, r, form, http.StatusUnprocessableEntity)
	default:
		s.renderPage(w, r, form, http.StatusBadGateway)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// parseSignupForm applies the posted values to a fresh form. Under variant
// B the hidden accessCode input carries the page's fragment.
func parseSignupForm(rules forms.Rules, r *http.Request) model.SignupForm {
	form := rules.NewSignupForm()
	for _, field := range model.Fields {
		rules.SetField(&form, field, r.PostForm.Get(field))
	}
	if rules.Variant == model.VariantB {
		rules.SetFragment(&form, r.PostForm.Get(model.FieldAccessCode))
	}
	return form
}

func (s *server) renderPage(w http.ResponseWriter, r *http.Request, form model.SignupForm, status int) {
	locale := s.localeFor(r)
	client := s.client
	client.Locale = locale
	page := components.Page(client, components.SignupView{
		Printer: s.printer(locale),
		Rules:   s.rules,
		Form:    form,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(w); err != nil {
		s.logger.Error(logging.CategoryHTTP, "render signup page", err, map[string]any{
			"request_id": logging.RequestIDFromContext(r.Context()),
		})
	}
}

func (s *server) printer(locale string) *message.Printer {
	return s.catalog.Printer(locale)
}

// httpRedirector finishes a successful submission with a 303 to the hosted
// checkout page.
type httpRedirector struct {
	w        http.ResponseWriter
	r        *http.Request
	resolver CheckoutURLResolver
}

func (h *httpRedirector) RedirectToCheckout(ctx context.Context, session model.CheckoutSession) error {
	target := strings.TrimSpace(session.URL)
	if h.resolver != nil {
		resolved, err := h.resolver.CheckoutURL(ctx, session.SessionID)
		if err != nil {
			return err
		}
		target = resolved
	}
	if target == "" {
		return errors.New("checkout session has no hosted URL")
	}
	http.Redirect(h.w, h.r, target, http.StatusSeeOther)
	return nil
}
