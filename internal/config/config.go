package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Auth strategy identifiers.
const (
	AuthStrategyHMAC = "hmac"
	AuthStrategyJWT  = "jwt"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	XenditAPIURL        string
	XenditSecretKey     string
	XenditCallbackToken string
	JWTSecret           string
	AuthStrategy        string
	TokenTTL            time.Duration
	MaxCartWeight       int
	ShippingRates       map[string]int64
	InvoiceDuration     time.Duration
	ReconcileInterval   time.Duration
	WorkerPoolSize      int
	ShutdownTimeout     time.Duration
	MaxPaymentsBatch    int
	WebhookRateLimit    float64
	WebhookBurst        int
	MaxBodyBytes        int64
	AdminEmail          string
	AdminPassword       string
}

const (
	defaultRunAddress        = ":8080"
	defaultXenditAPIURL      = "https://api.xendit.co"
	defaultJWTSecret         = "change-me-in-production"
	defaultAuthStrategy      = AuthStrategyHMAC
	defaultTokenTTL          = 24 * time.Hour
	defaultMaxCartWeight     = 30000
	defaultShippingRates     = "jne:10000,jnt:11000,sicepat:9000"
	defaultInvoiceDuration   = 24 * time.Hour
	defaultReconcileInterval = time.Minute
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxPaymentsBatch  = 32
	defaultWebhookRateLimit  = 10.0
	defaultWebhookBurst      = 20
	defaultMaxBodyBytes      = 1 << 20
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		XenditAPIURL:        getString(lookup, "XENDIT_API_URL", defaultXenditAPIURL),
		XenditSecretKey:     getString(lookup, "XENDIT_SECRET_KEY", ""),
		XenditCallbackToken: getString(lookup, "XENDIT_CALLBACK_TOKEN", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AuthStrategy:        getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		TokenTTL:            getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		MaxCartWeight:       getInt(lookup, "MAX_CART_WEIGHT", defaultMaxCartWeight),
		InvoiceDuration:     getDuration(lookup, "INVOICE_DURATION", defaultInvoiceDuration),
		ReconcileInterval:   getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxPaymentsBatch:    getInt(lookup, "POLL_BATCH_SIZE", defaultMaxPaymentsBatch),
		WebhookRateLimit:    getFloat(lookup, "WEBHOOK_RATE_LIMIT", defaultWebhookRateLimit),
		WebhookBurst:        getInt(lookup, "WEBHOOK_BURST", defaultWebhookBurst),
		MaxBodyBytes:        int64(getInt(lookup, "MAX_BODY_BYTES", defaultMaxBodyBytes)),
		AdminEmail:          getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:       getString(lookup, "ADMIN_PASSWORD", ""),
	}

	fs := flag.NewFlagSet("gophershop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
		shippingRatesStr     = getString(lookup, "SHIPPING_RATES", defaultShippingRates)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.XenditAPIURL, "x", cfg.XenditAPIURL, "Xendit API base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token strategy: hmac or jwt")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between payment reconciliation polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxPaymentsBatch, "poll-batch", cfg.MaxPaymentsBatch, "Maximum payments per reconciliation batch")
	fs.StringVar(&shippingRatesStr, "shipping-rates", shippingRatesStr, "Courier rates per kilogram, courier:rate pairs")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ShippingRates, err = parseShippingRates(shippingRatesStr); err != nil {
		return nil, fmt.Errorf("invalid shipping rates: %w", err)
	}

	if cfg.JWTSecret, err = fromFile(lookup, "JWT_SECRET_FILE", cfg.JWTSecret); err != nil {
		return nil, fmt.Errorf("read jwt secret file: %w", err)
	}

	if cfg.XenditCallbackToken, err = fromFile(lookup, "XENDIT_CALLBACK_TOKEN_FILE", cfg.XenditCallbackToken); err != nil {
		return nil, fmt.Errorf("read callback token file: %w", err)
	}

	cfg.AuthStrategy = strings.ToLower(strings.TrimSpace(cfg.AuthStrategy))
	switch cfg.AuthStrategy {
	case AuthStrategyHMAC, AuthStrategyJWT:
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxPaymentsBatch <= 0 {
		cfg.MaxPaymentsBatch = defaultMaxPaymentsBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.MaxCartWeight <= 0 {
		cfg.MaxCartWeight = defaultMaxCartWeight
	}

	if cfg.InvoiceDuration <= 0 {
		cfg.InvoiceDuration = defaultInvoiceDuration
	}

	if cfg.WebhookRateLimit <= 0 {
		cfg.WebhookRateLimit = defaultWebhookRateLimit
	}

	if cfg.WebhookBurst <= 0 {
		cfg.WebhookBurst = defaultWebhookBurst
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.XenditSecretKey == "" {
		return nil, fmt.Errorf("xendit secret key must be provided")
	}

	if cfg.XenditCallbackToken == "" {
		return nil, fmt.Errorf("xendit callback token must be provided")
	}

	return cfg, nil
}

// Couriers returns configured courier codes in stable order.
func (c *Config) Couriers() []string {
	couriers := make([]string, 0, len(c.ShippingRates))
	for code := range c.ShippingRates {
		couriers = append(couriers, code)
	}
	sort.Strings(couriers)
	return couriers
}

func parseShippingRates(raw string) (map[string]int64, error) {
	rates := make(map[string]int64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, rate, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		code = strings.ToLower(strings.TrimSpace(code))
		value, err := strconv.ParseInt(strings.TrimSpace(rate), 10, 64)
		if err != nil || value <= 0 || code == "" {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		rates[code] = value
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no couriers configured")
	}
	return rates, nil
}

func fromFile(lookup envLookup, key, current string) (string, error) {
	path, ok := lookup(key)
	if !ok || path == "" {
		return current, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
