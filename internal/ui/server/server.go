package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Its-donkey/webstay/internal/i18n"
	"github.com/Its-donkey/webstay/internal/ui/components"
	"github.com/Its-donkey/webstay/internal/ui/forms"
	"github.com/Its-donkey/webstay/internal/ui/model"
	"github.com/Its-donkey/webstay/logging"
)

//go:embed static
var staticFS embed.FS

// Options configures the signup HTTP server.
type Options struct {
	Listen    string
	AssetsDir string

	Variant model.Variant
	// Gate is the access code (variant A) or fragment secret (variant B).
	// Empty selects the built-in secret.
	Gate   string
	Locale string
	Plan   string

	// NotifyURL, CheckoutURL and PublishableKey are handed to the wasm client.
	NotifyURL      string
	CheckoutURL    string
	PublishableKey string

	Catalog  *i18n.Catalog
	Notifier forms.Notifier
	Sessions forms.SessionCreator
	// Resolver looks up the hosted checkout URL. When nil the URL returned
	// by the checkout endpoint is used.
	Resolver CheckoutURLResolver
	Logger   *logging.Logger

	ShutdownTimeout time.Duration
}

// CheckoutURLResolver maps a checkout session to the URL the visitor pays at.
type CheckoutURLResolver interface {
	CheckoutURL(ctx context.Context, sessionID string) (string, error)
}

type server struct {
	assetsDir string
	rules     forms.Rules
	locale    string
	plan      string
	client    components.ClientConfig
	catalog   *i18n.Catalog
	notifier  forms.Notifier
	sessions  forms.SessionCreator
	resolver  CheckoutURLResolver
	logger    *logging.Logger
}

func newServer(opts Options) (*server, error) {
	if opts.Notifier == nil || opts.Sessions == nil {
		return nil, errors.New("notifier and checkout sessions are required")
	}
	if opts.Catalog == nil {
		catalog, err := i18n.Load()
		if err != nil {
			return nil, fmt.Errorf("load locales: %w", err)
		}
		opts.Catalog = catalog
	}
	if opts.Locale == "" {
		opts.Locale = i18n.DefaultLocale
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.AssetsDir == "" {
		opts.AssetsDir = "ui"
	}
	assetsPath, err := filepath.Abs(opts.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve assets dir: %w", err)
	}

	rules := forms.RulesFor(opts.Variant, opts.Gate)
	_, statErr := os.Stat(filepath.Join(assetsPath, "main.wasm"))

	return &server{
		assetsDir: assetsPath,
		rules:     rules,
		locale:    opts.Locale,
		plan:      opts.Plan,
		client: components.ClientConfig{
			Variant:        rules.Variant,
			Gate:           rules.Secret,
			NotifyURL:      opts.NotifyURL,
			CheckoutURL:    opts.CheckoutURL,
			Plan:           opts.Plan,
			PublishableKey: opts.PublishableKey,
			Locale:         opts.Locale,
			WASM:           statErr == nil,
		},
		catalog:  opts.Catalog,
		notifier: opts.Notifier,
		sessions: opts.Sessions,
		resolver: opts.Resolver,
		logger:   opts.Logger,
	}, nil
}

func (s *server) routes() http.Handler {
	httpLogger := logging.NewHTTPLogger(s.logger, 4096)
	httpLogger.RedactFields = []string{model.FieldAccessCode}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httpLogger.Middleware)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/main.wasm", s.assetHandler("main.wasm", "application/wasm"))
	r.Get("/wasm_exec.js", s.assetHandler("wasm_exec.js", "application/javascript"))

	r.Get("/", s.handleHome)
	r.Get("/signup", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	r.Post("/signup", s.handleSignup)
	r.Get("/healthz", s.handleHealth)
	return r
}

// Run starts the signup HTTP server and blocks until ctx is cancelled or the
// listener fails.
func Run(ctx context.Context, opts Options) error {
	srv, err := newServer(opts)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              opts.Listen,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	srv.logger.Info(logging.CategoryServer, "serving signup page", map[string]any{
		"listen":  opts.Listen,
		"variant": string(srv.rules.Variant),
		"wasm":    srv.client.WASM,
	})

	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

func (s *server) assetHandler(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		http.ServeFile(w, r, filepath.Join(s.assetsDir, name))
	}
}

// localeFor picks the page locale: a supported ?lang= wins over the
// configured default.
func (s *server) localeFor(r *http.Request) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" && s.catalog.Supported(lang) {
		return lang
	}
	return s.locale
}
