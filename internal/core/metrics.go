package core

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the alert service.
type Metrics struct {
	RequestCount   *prometheus.CounterVec   // labels: method, route, status
	RequestLatency *prometheus.HistogramVec // labels: method, route

	Evaluations       *prometheus.CounterVec // labels: outcome={severe,clear}
	NotificationsSent prometheus.Counter
	DispatchFailures  prometheus.Counter
	StorageFailures   prometheus.Counter
}

// NewMetrics creates all collectors and registers them with reg. Passing
// prometheus.DefaultRegisterer is the production path; tests pass a fresh
// registry to avoid "already registered" panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raincheck",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern, and status.",
		}, []string{"method", "route", "status"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "raincheck",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raincheck",
			Name:      "forecast_evaluations_total",
			Help:      "Forecast severity evaluations by outcome.",
		}, []string{"outcome"}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raincheck",
			Name:      "notifications_sent_total",
			Help:      "Warning emails successfully dispatched.",
		}),
		DispatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raincheck",
			Name:      "dispatch_failures_total",
			Help:      "Warning email dispatch attempts that failed.",
		}),
		StorageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raincheck",
			Name:      "storage_failures_total",
			Help:      "Notification audit writes that failed after dispatch.",
		}),
	}

	reg.MustRegister(
		m.RequestCount,
		m.RequestLatency,
		m.Evaluations,
		m.NotificationsSent,
		m.DispatchFailures,
		m.StorageFailures,
	)

	return m
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	m.RequestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordEvaluation records a severity evaluation outcome.
func (m *Metrics) RecordEvaluation(severe bool) {
	outcome := "clear"
	if severe {
		outcome = "severe"
	}
	m.Evaluations.WithLabelValues(outcome).Inc()
}

// RecordDispatchSuccess records a successfully dispatched warning email.
func (m *Metrics) RecordDispatchSuccess() {
	m.NotificationsSent.Inc()
}

// RecordDispatchFailure records a failed dispatch attempt.
func (m *Metrics) RecordDispatchFailure() {
	m.DispatchFailures.Inc()
}

// RecordStorageFailure records an audit write that failed after dispatch.
func (m *Metrics) RecordStorageFailure() {
	m.StorageFailures.Inc()
}
