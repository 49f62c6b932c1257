// Package config reads the signup server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds all signup server configuration.
type Config struct {
	Listen    string `env:"SIGNUP_LISTEN" envDefault:"127.0.0.1:4173"`
	AssetsDir string `env:"SIGNUP_ASSETS_DIR" envDefault:"ui"`
	Variant   string `env:"SIGNUP_VARIANT" envDefault:"A"`
	Locale    string `env:"SIGNUP_LOCALE" envDefault:"sv-SE"`
	Plan      string `env:"SIGNUP_PLAN" envDefault:"testuser-plan"`

	// Gate secrets; empty means the built-in value for the variant.
	AccessCode     string `env:"SIGNUP_ACCESS_CODE"`
	FragmentSecret string `env:"SIGNUP_FRAGMENT_SECRET"`

	NotifyURL   string `env:"NOTIFY_URL,required"`
	CheckoutURL string `env:"CHECKOUT_URL,required"`

	Stripe StripeConfig
	Log    LogConfig

	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// StripeConfig holds the payment provider keys. The secret key never leaves
// the server; the publishable key is rendered into the page for Stripe.js.
type StripeConfig struct {
	PublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`
	SecretKey      string `env:"STRIPE_SECRET_KEY"`
	APIURL         string `env:"STRIPE_API_URL"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level     string `env:"LOG_LEVEL" envDefault:"info"`
	Dir       string `env:"LOG_DIR"`
	MaxSizeMB int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	MaxFiles  int    `env:"LOG_MAX_FILES" envDefault:"5"`
}

// Load reads envFile into the process environment when it exists, then
// parses and validates the configuration.
func Load(envFile string) (Config, error) {
	if envFile = strings.TrimSpace(envFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Parse builds a Config from an explicit environment map instead of the
// process environment.
func Parse(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Gate returns the configured gate secret of the selected variant.
func (c Config) Gate() string {
	if strings.EqualFold(strings.TrimSpace(c.Variant), "B") {
		return c.FragmentSecret
	}
	return c.AccessCode
}

// Validate checks values the env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToUpper(strings.TrimSpace(c.Variant)) {
	case "A", "B":
	default:
		errs = append(errs, fmt.Errorf("SIGNUP_VARIANT must be A or B, got %q", c.Variant))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("SIGNUP_LOCALE %q: %w", c.Locale, err))
	}
	if strings.TrimSpace(c.Plan) == "" {
		errs = append(errs, errors.New("SIGNUP_PLAN must not be empty"))
	}
	for name, raw := range map[string]string{
		"NOTIFY_URL":     c.NotifyURL,
		"CHECKOUT_URL":   c.CheckoutURL,
		"STRIPE_API_URL": c.Stripe.APIURL,
	} {
		if name == "STRIPE_API_URL" && raw == "" {
			continue
		}
		if err := checkURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.HTTPClientTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_CLIENT_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func checkURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
