package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Group metrics
	GroupsCreated  prometheus.Counter
	ExpensesAdded  prometheus.Counter
	ExpenseAmount  prometheus.Histogram
	ActiveSessions prometheus.Gauge

	// Collaborator metrics
	Summaries        *prometheus.CounterVec
	PaymentOrders    prometheus.Counter
	ExternalFailures *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Group metrics
		GroupsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_groups_created_total",
			Help: "Total number of groups created",
		}),
		ExpensesAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_expenses_added_total",
			Help: "Total number of group expenses recorded",
		}),
		ExpenseAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosplit_expense_amount",
			Help:    "Group expense amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gosplit_active_sessions",
			Help: "Current number of live sessions",
		}),

		// Collaborator metrics
		Summaries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosplit_summaries_total",
				Help: "Total summaries served, by cache outcome",
			},
			[]string{"cached"},
		),
		PaymentOrders: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_payment_orders_total",
			Help: "Total payment orders opened",
		}),
		ExternalFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosplit_external_failures_total",
				Help: "Total failed calls to external services",
			},
			[]string{"service"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosplit_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gosplit_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gosplit_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosplit_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"path"},
		),
	}
}

// GroupCreated counts a new group.
func (m *Metrics) GroupCreated() {
	m.GroupsCreated.Inc()
}

// ExpenseAdded counts an expense and observes its amount.
func (m *Metrics) ExpenseAdded(amount decimal.Decimal) {
	m.ExpensesAdded.Inc()
	m.ExpenseAmount.Observe(amount.InexactFloat64())
}

// SummaryGenerated counts a served summary.
func (m *Metrics) SummaryGenerated(cached bool) {
	label := "false"
	if cached {
		label = "true"
	}

	m.Summaries.WithLabelValues(label).Inc()
}

// PaymentOrderCreated counts an opened order.
func (m *Metrics) PaymentOrderCreated() {
	m.PaymentOrders.Inc()
}

// ExternalCallFailed counts a failed collaborator call.
func (m *Metrics) ExternalCallFailed(service string) {
	m.ExternalFailures.WithLabelValues(service).Inc()
}
