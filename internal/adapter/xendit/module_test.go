package xendit

import (
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/gophershop/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{XenditAPIURL: "https://api.xendit.co", XenditSecretKey: "xnd_development_key"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.secretKey != cfg.XenditSecretKey {
		t.Fatalf("expected secret key from config")
	}

	cfg.XenditSecretKey = ""
	if _, err := newClient(clientParams{Config: cfg, Logger: logger}); err == nil {
		t.Fatal("expected error without secret key")
	}
}
