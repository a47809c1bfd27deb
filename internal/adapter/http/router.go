package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gosplit/internal/adapter/http/handler"
	"github.com/iho/gosplit/internal/adapter/http/middleware"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
	"github.com/iho/gosplit/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SessionHandler    *handler.SessionHandler
	GroupHandler      *handler.GroupHandler
	SettlementHandler *handler.SettlementHandler
	InsightHandler    *handler.InsightHandler
	PaymentHandler    *handler.PaymentHandler
	TrackerHandler    *handler.TrackerHandler
	ExportHandler     *handler.ExportHandler
	HealthHandler     *handler.HealthHandler

	Sessions middleware.SessionResolver
	Logger   zerolog.Logger

	// Optional
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsGatherer  prometheus.Gatherer
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	// Rate limit only the endpoints that call paid collaborators
	limited := func(h http.HandlerFunc) http.Handler {
		if cfg.RateLimiter == nil {
			return h
		}
		return cfg.RateLimiter.Limit(h)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", cfg.SessionHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(cfg.Sessions))

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Delete("/sessions/current", cfg.SessionHandler.Delete)

			// Groups
			r.Route("/groups", func(r chi.Router) {
				r.Post("/", cfg.GroupHandler.Create)
				r.Get("/", cfg.GroupHandler.List)

				r.Route("/{group}", func(r chi.Router) {
					r.Get("/", cfg.GroupHandler.Get)
					r.Post("/members", cfg.GroupHandler.AddMember)
					r.Put("/members/{member}/paid", cfg.GroupHandler.SetPaidStatus)
					r.Post("/expenses", cfg.GroupHandler.AddExpense)
					r.Get("/expenses", cfg.GroupHandler.ListExpenses)

					r.Get("/balances", cfg.SettlementHandler.Balances)
					r.Get("/leaderboard", cfg.SettlementHandler.Leaderboard)
					r.Get("/payees", cfg.SettlementHandler.Payees)
					r.Get("/transfers", cfg.SettlementHandler.Transfers)
					r.Get("/consistency", cfg.SettlementHandler.Consistency)

					r.Get("/export/expenses.csv", cfg.ExportHandler.ExpensesCSV)
					r.Get("/export/balances.csv", cfg.ExportHandler.BalancesCSV)
					r.Get("/export/report.xlsx", cfg.ExportHandler.ReportXLSX)

					r.Method(http.MethodPost, "/summary", limited(cfg.InsightHandler.Summarize))
					r.Method(http.MethodPost, "/payments", limited(cfg.PaymentHandler.Create))
				})
			})

			// Personal tracker
			r.Route("/personal", func(r chi.Router) {
				r.Post("/expenses", cfg.TrackerHandler.AddExpense)
				r.Get("/months/{year}/{month}", cfg.TrackerHandler.Month)
				r.Get("/months/{year}/{month}/export.csv", cfg.TrackerHandler.ExportMonth)
			})
		})
	})

	return r
}
