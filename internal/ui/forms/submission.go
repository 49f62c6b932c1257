package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/message"

	"github.com/Its-donkey/webstay/internal/checkout"
	"github.com/Its-donkey/webstay/internal/i18n"
	"github.com/Its-donkey/webstay/internal/ui/model"
	"github.com/Its-donkey/webstay/logging"
)

// ErrNotReady is returned when Submit is called while the form cannot be
// submitted. Nothing is sent and the form is left untouched.
var ErrNotReady = errors.New("signup form is not ready to submit")

// ErrorKind classifies a failed submission.
type ErrorKind string

const (
	KindNotification ErrorKind = "notification"
	KindCheckout     ErrorKind = "checkout"
	KindPayment      ErrorKind = "payment"
	KindUnexpected   ErrorKind = "unexpected"
)

// SubmitError is a failed submission. Message is what the visitor sees.
type SubmitError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("signup %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("signup %s: %s", e.Kind, e.Message)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Notifier tells the operator about a new signup.
type Notifier interface {
	Notify(ctx context.Context, req model.NotificationRequest) error
}

// SessionCreator issues hosted checkout sessions.
type SessionCreator interface {
	CreateSession(ctx context.Context, req model.CheckoutRequest) (model.CheckoutSession, error)
}

// Redirector hands the visitor over to the payment provider. Errors the
// provider reports should be *checkout.PaymentError.
type Redirector interface {
	RedirectToCheckout(ctx context.Context, session model.CheckoutSession) error
}

// Submitter runs the signup chain: notify, create session, redirect.
type Submitter struct {
	Notifier   Notifier
	Sessions   SessionCreator
	Redirector Redirector
	Plan       string
	Printer    *message.Printer
	Logger     *logging.Logger
	// OnChange is called after every status transition.
	OnChange func()
}

// Submit runs the chain for form. Steps run strictly in order and the first
// failure stops it, returns the form to idle and sets form.Error. On success
// the form is left redirecting. Failures are returned as *SubmitError.
func (s *Submitter) Submit(ctx context.Context, form *model.SignupForm) (err error) {
	if form == nil || !CanSubmit(*form) {
		return ErrNotReady
	}

	form.Status = model.StatusProcessing
	form.Error = ""
	s.changed()

	defer func() {
		if r := recover(); r != nil {
			err = s.fail(ctx, form, &SubmitError{
				Kind:    KindUnexpected,
				Message: s.printer().Sprintf("error.unexpected"),
				Err:     fmt.Errorf("panic: %v", r),
			})
		}
	}()

	if err := s.run(ctx, form); err != nil {
		return s.fail(ctx, form, err)
	}
	return nil
}

func (s *Submitter) run(ctx context.Context, form *model.SignupForm) *SubmitError {
	p := s.printer()
	name := strings.TrimSpace(form.Values.Name)
	email := strings.TrimSpace(form.Values.Email)

	notification := model.NotificationRequest{Message: NotificationMessage(p, form.Values)}
	if err := s.Notifier.Notify(ctx, notification); err != nil {
		return &SubmitError{Kind: KindNotification, Message: p.Sprintf("error.notify"), Err: err}
	}

	session, err := s.Sessions.CreateSession(ctx, model.CheckoutRequest{
		Plan:  s.Plan,
		Name:  name,
		Email: email,
	})
	if err != nil {
		var decodeErr *checkout.DecodeError
		if errors.As(err, &decodeErr) {
			return &SubmitError{Kind: KindUnexpected, Message: p.Sprintf("error.unexpected"), Err: err}
		}
		return &SubmitError{Kind: KindCheckout, Message: p.Sprintf("error.checkout"), Err: err}
	}
	if strings.TrimSpace(session.SessionID) == "" {
		return &SubmitError{Kind: KindUnexpected, Message: p.Sprintf("error.unexpected"), Err: errors.New("checkout session has no id")}
	}

	form.Status = model.StatusRedirecting
	s.changed()
	s.Logger.WithRequestID(logging.RequestIDFromContext(ctx)).
		WithCategory(logging.CategorySignup).
		WithField("session_id", session.SessionID).
		Info("redirecting to checkout")

	if err := s.Redirector.RedirectToCheckout(ctx, session); err != nil {
		var paymentErr *checkout.PaymentError
		if errors.As(err, &paymentErr) && strings.TrimSpace(paymentErr.Message) != "" {
			return &SubmitError{Kind: KindPayment, Message: paymentErr.Message, Err: err}
		}
		return &SubmitError{Kind: KindUnexpected, Message: p.Sprintf("error.unexpected"), Err: err}
	}
	return nil
}

func (s *Submitter) fail(ctx context.Context, form *model.SignupForm, serr *SubmitError) error {
	form.Status = model.StatusIdle
	form.Error = serr.Message
	s.Logger.WithRequestID(logging.RequestIDFromContext(ctx)).
		WithCategory(logging.CategorySignup).
		WithField("kind", string(serr.Kind)).
		WithField("variant", string(form.Variant)).
		Error("signup failed", serr.Err)
	s.changed()
	return serr
}

func (s *Submitter) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

func (s *Submitter) printer() *message.Printer {
	if s.Printer == nil {
		s.Printer = i18n.MustLoad().Printer(i18n.DefaultLocale)
	}
	return s.Printer
}
