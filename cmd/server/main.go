package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/gosplit/internal/adapter/http"
	"github.com/iho/gosplit/internal/adapter/gateway/gemini"
	"github.com/iho/gosplit/internal/adapter/gateway/razorpay"
	"github.com/iho/gosplit/internal/adapter/http/handler"
	"github.com/iho/gosplit/internal/adapter/http/middleware"
	"github.com/iho/gosplit/internal/adapter/repository/memory"
	redisRepo "github.com/iho/gosplit/internal/adapter/repository/redis"
	"github.com/iho/gosplit/internal/infrastructure/auth"
	"github.com/iho/gosplit/internal/infrastructure/config"
	"github.com/iho/gosplit/internal/infrastructure/logger"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
	"github.com/iho/gosplit/internal/infrastructure/redis"
	"github.com/iho/gosplit/internal/usecase"
)

const (
	redisPingTimeout       = 5 * time.Second
	limiterCleanupInterval = 10 * time.Minute
	summaryMaxRetries      = 3
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

// app is the assembled service.
type app struct {
	handler  http.Handler
	sessions *memory.SessionManager
	limiter  *middleware.RateLimiter
	redis    *goredis.Client
}

func (a *app) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

// newApp wires repositories, collaborators, use cases and handlers.
func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg *prometheus.Registry) (*app, error) {
	m := metrics.New(reg)
	a := &app{}

	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, redisPingTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.redis = client
		cache = redisRepo.NewCache(client)
		idempotencyStore = redisRepo.NewIdempotencyStore(client)
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("REDIS_URL not set, idempotency and summary cache disabled")
	}

	var summarizer usecase.Summarizer
	if cfg.SummariesEnabled() {
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:     cfg.GoogleAPIKey,
			Model:      cfg.SummaryModel,
			MaxRetries: summaryMaxRetries,
		})
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		summarizer = client
	} else {
		log.Warn().Msg("GOOGLE_API_KEY not set, summaries disabled")
	}

	var gateway usecase.PaymentGateway
	if cfg.PaymentsEnabled() {
		client, err := razorpay.New(cfg.RazorpayKey, cfg.RazorpaySecret)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		gateway = client
	} else {
		log.Warn().Msg("razorpay credentials not set, payments disabled")
	}

	secret := cfg.SessionSecret
	if secret == "" {
		var err error
		if secret, err = auth.RandomSecret(); err != nil {
			_ = a.Close()
			return nil, err
		}
		log.Warn().Msg("SESSION_SECRET not set, tokens will not survive a restart")
	}

	idGen := memory.NewULIDGenerator()
	a.sessions = memory.NewSessionManager(m.ActiveSessions)

	// Use cases
	sessionUC := usecase.NewSessionUseCase(a.sessions, auth.NewJWTManager(secret, cfg.SessionTTL), idGen)
	groupUC := usecase.NewGroupUseCase(idGen, m)
	settlementUC := usecase.NewSettlementUseCase()
	insightUC := usecase.NewInsightUseCase(summarizer, cache, usecase.InsightConfig{
		Timeout:  cfg.SummaryTimeout,
		CacheTTL: cfg.SummaryCacheTTL,
	}, m)
	paymentUC, err := usecase.NewPaymentUseCase(gateway, idGen, usecase.PaymentConfig{
		Currency: cfg.PaymentCurrency,
		Timeout:  cfg.PaymentTimeout,
	}, m)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	trackerUC := usecase.NewTrackerUseCase(idGen)

	a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	a.limiter.OnLimit = func(r *http.Request) {
		m.RateLimitHits.WithLabelValues(chi.RouteContext(r.Context()).RoutePattern()).Inc()
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SessionHandler:    handler.NewSessionHandler(sessionUC),
		GroupHandler:      handler.NewGroupHandler(groupUC),
		SettlementHandler: handler.NewSettlementHandler(settlementUC),
		InsightHandler:    handler.NewInsightHandler(insightUC),
		PaymentHandler:    handler.NewPaymentHandler(paymentUC),
		TrackerHandler:    handler.NewTrackerHandler(trackerUC),
		ExportHandler:     handler.NewExportHandler(groupUC, settlementUC),
		HealthHandler: handler.NewHealthHandler(a.redis, handler.Features{
			Summaries: summarizer != nil,
			Payments:  gateway != nil,
		}),
		Sessions:         sessionUC,
		Logger:           log,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      a.limiter,
		Metrics:          m,
		MetricsGatherer:  reg,
	})

	return a, nil
}

// run serves HTTP until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := newApp(ctx, cfg, log, reg)
	if err != nil {
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return a.sessions.RunJanitor(gctx, cfg.SessionJanitorInterval, cfg.SessionIdleTTL)
	})

	g.Go(func() error {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				a.limiter.CleanupLimiters()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
