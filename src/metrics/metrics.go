// Package metrics provides Prometheus collectors for the console.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the console.
type Metrics struct {
	// Backend metrics
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec

	// Polling metrics
	PollTicks           *prometheus.CounterVec
	ActiveSubscriptions prometheus.Gauge

	// Query cache metrics
	CacheLookups *prometheus.CounterVec

	// Operator feedback
	Notifications *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a Metrics instance registered on its own registry, so several
// instances can coexist in tests.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tradedesk"
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		BackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Backend API requests by method, path and outcome",
		}, []string{"method", "path", "outcome"}),
		BackendLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		PollTicks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_ticks_total",
			Help:      "Polling subscription ticks by query name",
		}, []string{"query"}),
		ActiveSubscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "poll_subscriptions_active",
			Help:      "Currently running polling subscriptions",
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_lookups_total",
			Help:      "Query cache lookups by result (hit, miss, shared)",
		}, []string{"result"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Operator notifications by level",
		}, []string{"level"}),
		registry: reg,
	}
}

// ObserveBackend records one backend round trip.
func (m *Metrics) ObserveBackend(method, path, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(method, path, outcome).Inc()
	m.BackendLatency.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) PollTick(query string) {
	if m == nil {
		return
	}
	m.PollTicks.WithLabelValues(query).Inc()
}

func (m *Metrics) SubscriptionStarted() {
	if m == nil {
		return
	}
	m.ActiveSubscriptions.Inc()
}

func (m *Metrics) SubscriptionStopped() {
	if m == nil {
		return
	}
	m.ActiveSubscriptions.Dec()
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) Notification(level string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(level).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
