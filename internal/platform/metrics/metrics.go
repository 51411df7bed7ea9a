package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. Callers that run
// without metrics (tests, mostly) pass nil; every method is nil-safe.
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec
	ReportsCreated      *prometheus.CounterVec
	ReportsDeleted      *prometheus.CounterVec
	EmailsSent          prometheus.Counter
	EmailFailures       prometheus.Counter
	SheetCopies         prometheus.Counter
	RateLimitDenied     prometheus.Counter
}

// New creates and registers all Prometheus metrics. Call once per process;
// promauto registers against the default registry.
func New() *Metrics {
	return &Metrics{
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "metdesk_http_request_duration_seconds",
			Help:    "Latency of HTTP requests by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		ReportsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "metdesk_reports_created_total",
			Help: "Total reports persisted, by report type",
		}, []string{"type"}),
		ReportsDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "metdesk_reports_deleted_total",
			Help: "Total reports deleted, by report type",
		}, []string{"type"}),
		EmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "metdesk_emails_sent_total",
			Help: "Total notification emails delivered",
		}),
		EmailFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "metdesk_email_failures_total",
			Help: "Total notification emails that failed to send",
		}),
		SheetCopies: promauto.NewCounter(prometheus.CounterOpts{
			Name: "metdesk_sheet_copies_total",
			Help: "Total sheet documents created from templates",
		}),
		RateLimitDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "metdesk_rate_limit_denied_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (m *Metrics) ReportCreated(reportType string) {
	if m == nil {
		return
	}
	m.ReportsCreated.WithLabelValues(reportType).Inc()
}

func (m *Metrics) ReportDeleted(reportType string, count int64) {
	if m == nil {
		return
	}
	m.ReportsDeleted.WithLabelValues(reportType).Add(float64(count))
}

func (m *Metrics) EmailSent() {
	if m == nil {
		return
	}
	m.EmailsSent.Inc()
}

func (m *Metrics) EmailFailed() {
	if m == nil {
		return
	}
	m.EmailFailures.Inc()
}

func (m *Metrics) SheetCopied() {
	if m == nil {
		return
	}
	m.SheetCopies.Inc()
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.RateLimitDenied.Inc()
}
