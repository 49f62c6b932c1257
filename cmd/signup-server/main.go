package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Its-donkey/webstay/internal/checkout"
	"github.com/Its-donkey/webstay/internal/config"
	"github.com/Its-donkey/webstay/internal/notify"
	"github.com/Its-donkey/webstay/internal/ui/forms"
	"github.com/Its-donkey/webstay/internal/ui/server"
	"github.com/Its-donkey/webstay/logging"
)

func main() {
	listen := flag.String("listen", "", "address to serve the signup page (overrides SIGNUP_LISTEN)")
	assetsDir := flag.String("assets", "", "directory holding main.wasm and wasm_exec.js (overrides SIGNUP_ASSETS_DIR)")
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}

	logger, closeLog, err := newLogger(cfg.Log, os.Stdout)
	if err != nil {
		log.Fatalf("configure logging: %v", err)
	}
	defer closeLog()
	logger.Printf("signup-server starting (variant %s, locale %s)", cfg.Variant, cfg.Locale)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, buildOptions(cfg, logger)); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(logging.CategoryServer, "signup server stopped", err, nil)
		closeLog()
		os.Exit(1)
	}
}

// newLogger builds the process logger. With LOG_DIR set, entries also go to
// a rotating file.
func newLogger(cfg config.LogConfig, stdout io.Writer) (*logging.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	writers := []io.Writer{stdout}
	closeLog := func() {}
	if cfg.Dir != "" {
		fw, err := logging.NewFileWriter(cfg.Dir, "signup.log", cfg.MaxSizeMB, cfg.MaxFiles)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, fw)
		closeLog = func() { _ = fw.Close() }
	}
	return logging.New("signup-server", level, writers...), closeLog, nil
}

func buildOptions(cfg config.Config, logger *logging.Logger) server.Options {
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	opts := server.Options{
		Listen:          cfg.Listen,
		AssetsDir:       cfg.AssetsDir,
		Variant:         forms.ParseVariant(cfg.Variant),
		Gate:            cfg.Gate(),
		Locale:          cfg.Locale,
		Plan:            cfg.Plan,
		NotifyURL:       cfg.NotifyURL,
		CheckoutURL:     cfg.CheckoutURL,
		PublishableKey:  cfg.Stripe.PublishableKey,
		Notifier:        notify.NewClient(cfg.NotifyURL, httpClient, 0),
		Sessions:        checkout.NewClient(cfg.CheckoutURL, checkout.WithHTTPClient(httpClient)),
		Logger:          logger,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}
	if cfg.Stripe.SecretKey != "" {
		opts.Resolver = checkout.NewStripeResolver(cfg.Stripe.SecretKey, cfg.Stripe.APIURL, httpClient)
	}
	return opts
}
