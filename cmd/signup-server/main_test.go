package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Its-donkey/webstay/internal/config"
	"github.com/Its-donkey/webstay/internal/ui/model"
	"github.com/Its-donkey/webstay/logging"
)

func testConfig(t *testing.T, extra map[string]string) config.Config {
	t.Helper()
	environment := map[string]string{
		"NOTIFY_URL":   "https://hooks.example.com/notify",
		"CHECKOUT_URL": "https://hooks.example.com/checkout",
	}
	for k, v := range extra {
		environment[k] = v
	}
	cfg, err := config.Parse(environment)
	if err != nil {
		t.Fatalf("config.Parse: %v", err)
	}
	return cfg
}

func TestBuildOptionsWithoutStripeSecret(t *testing.T) {
	opts := buildOptions(testConfig(t, nil), logging.Discard())
	if opts.Resolver != nil {
		t.Fatalf("expected no resolver without a secret key")
	}
	if opts.Variant != model.VariantA || opts.Gate != "" || opts.Plan != "testuser-plan" {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.Notifier == nil || opts.Sessions == nil {
		t.Fatalf("expected clients to be wired")
	}
}

func TestBuildOptionsVariantBWithStripe(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"SIGNUP_VARIANT":         "B",
		"SIGNUP_FRAGMENT_SECRET": "#invite",
		"STRIPE_SECRET_KEY":      "sk_test_123",
		"STRIPE_PUBLISHABLE_KEY": "pk_test_123",
	})
	opts := buildOptions(cfg, logging.Discard())
	if opts.Variant != model.VariantB || opts.Gate != "#invite" {
		t.Fatalf("expected variant B with its secret, got %+v", opts)
	}
	if opts.Resolver == nil {
		t.Fatalf("expected stripe resolver")
	}
	if opts.PublishableKey != "pk_test_123" {
		t.Fatalf("expected publishable key, got %q", opts.PublishableKey)
	}
}

func TestNewLoggerWritesToStdoutAndFile(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	logger, closeLog, err := newLogger(config.LogConfig{Level: "warn", Dir: dir, MaxSizeMB: 1, MaxFiles: 2}, &stdout)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info(logging.CategoryServer, "hidden", nil)
	logger.Warn(logging.CategoryServer, "shown", nil)
	closeLog()

	if strings.Contains(stdout.String(), "hidden") || !strings.Contains(stdout.String(), "shown") {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "signup.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"shown"`) {
		t.Fatalf("expected entry in log file, got %q", data)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, _, err := newLogger(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
