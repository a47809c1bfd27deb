package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/iho/gosplit/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"60s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis (optional - leave empty to disable idempotency and the summary cache)
	RedisURL       string        `env:"REDIS_URL"       envDefault:""`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Sessions
	SessionSecret          string        `env:"SESSION_SECRET"           envDefault:""`
	SessionTTL             time.Duration `env:"SESSION_TTL"              envDefault:"24h"`
	SessionIdleTTL         time.Duration `env:"SESSION_IDLE_TTL"         envDefault:"2h"`
	SessionJanitorInterval time.Duration `env:"SESSION_JANITOR_INTERVAL" envDefault:"5m"`

	// Summaries (optional - leave GOOGLE_API_KEY empty to disable)
	GoogleAPIKey    string        `env:"GOOGLE_API_KEY"    envDefault:""`
	SummaryModel    string        `env:"SUMMARY_MODEL"     envDefault:"gemini-1.5-flash"`
	SummaryTimeout  time.Duration `env:"SUMMARY_TIMEOUT"   envDefault:"30s"`
	SummaryCacheTTL time.Duration `env:"SUMMARY_CACHE_TTL" envDefault:"1h"`

	// Payments (optional - leave credentials empty to disable)
	RazorpayKey     string        `env:"RAZORPAY_KEY"     envDefault:""`
	RazorpaySecret  string        `env:"RAZORPAY_SECRET"  envDefault:""`
	PaymentCurrency string        `env:"PAYMENT_CURRENCY" envDefault:"INR"`
	PaymentTimeout  time.Duration `env:"PAYMENT_TIMEOUT"  envDefault:"15s"`

	// Rate limiting of summary and payment endpoints
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %q", c.HTTPPort)
	}

	c.PaymentCurrency = strings.ToUpper(strings.TrimSpace(c.PaymentCurrency))
	if err := domain.ValidateCurrency(c.PaymentCurrency); err != nil {
		return fmt.Errorf("PAYMENT_CURRENCY: %w", err)
	}

	if (c.RazorpayKey == "") != (c.RazorpaySecret == "") {
		return errors.New("RAZORPAY_KEY and RAZORPAY_SECRET must be set together")
	}

	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("rate limit settings must not be negative")
	}

	return nil
}

// SummariesEnabled reports whether a summarizer can be built.
func (c *Config) SummariesEnabled() bool {
	return c.GoogleAPIKey != ""
}

// PaymentsEnabled reports whether a payment gateway can be built.
func (c *Config) PaymentsEnabled() bool {
	return c.RazorpayKey != "" && c.RazorpaySecret != ""
}
