package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dicegame_config"

// Metrics holds the collectors exported by the service.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	VerificationChecks *prometheus.CounterVec
	VerificationRuns   *prometheus.CounterVec
	ExportSurface      *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		VerificationChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_checks_total",
			Help:      "Verification check outcomes, by check and severity.",
		}, []string{"check", "severity"}),
		VerificationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_runs_total",
			Help:      "Verification runs, by whether they were served from cache.",
		}, []string{"cached"}),
		ExportSurface: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "export_surface",
			Help:      "Set to 1 for the surface the contract config was published on.",
		}, []string{"surface"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.VerificationChecks, m.VerificationRuns, m.ExportSurface)
	return m
}

// MustRegisterMetrics registers the collectors with the default Prometheus registry.
func MustRegisterMetrics() *Metrics {
	return New(prometheus.DefaultRegisterer)
}
