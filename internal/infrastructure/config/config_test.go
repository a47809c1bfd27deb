package config_test

import (
	"testing"
	"time"

	"github.com/iho/gosplit/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("RAZORPAY_KEY", "")
	t.Setenv("RAZORPAY_SECRET", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.PaymentCurrency != "INR" {
		t.Fatalf("expected default currency INR, got %s", cfg.PaymentCurrency)
	}

	if cfg.SummaryModel != "gemini-1.5-flash" {
		t.Fatalf("unexpected default model %s", cfg.SummaryModel)
	}

	if cfg.SummariesEnabled() || cfg.PaymentsEnabled() {
		t.Fatalf("expected collaborators to be disabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_IDLE_TTL", "45m")
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("RAZORPAY_KEY", "rzp_test")
	t.Setenv("RAZORPAY_SECRET", "secret")
	t.Setenv("PAYMENT_CURRENCY", "usd")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.SessionIdleTTL != 45*time.Minute {
		t.Fatalf("expected idle ttl override, got %s", cfg.SessionIdleTTL)
	}

	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rps override, got %v", cfg.RateLimitRPS)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	if cfg.PaymentCurrency != "USD" {
		t.Fatalf("expected currency to be normalized, got %s", cfg.PaymentCurrency)
	}

	if !cfg.SummariesEnabled() || !cfg.PaymentsEnabled() {
		t.Fatalf("expected collaborators to be enabled")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"non-numeric port", func(c *config.Config) { c.HTTPPort = "http" }},
		{"port out of range", func(c *config.Config) { c.HTTPPort = "70000" }},
		{"unknown currency", func(c *config.Config) { c.PaymentCurrency = "XXX1" }},
		{"razorpay key without secret", func(c *config.Config) { c.RazorpayKey = "rzp" }},
		{"negative burst", func(c *config.Config) { c.RateLimitBurst = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{HTTPPort: "8080", PaymentCurrency: "INR"}
			tt.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
