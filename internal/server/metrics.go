package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	discoveryFound    = "found"
	discoveryNotFound = "not_found"
)

// Metrics represents the api metrics
type Metrics struct {
	// Requests number per route
	requests *prometheus.CounterVec

	// Errors number per route
	errors *prometheus.CounterVec

	// Wallet code discovery attempts per result
	discovery *prometheus.CounterVec
}

func (m *Metrics) RequestsCounterInc(route string) {
	if m.requests != nil {
		m.requests.WithLabelValues(route).Inc()
	}
}

func (m *Metrics) ErrorsCounterInc(route string) {
	if m.errors != nil {
		m.errors.WithLabelValues(route).Inc()
	}
}

func (m *Metrics) DiscoveryCounterInc(result string) {
	if m.discovery != nil {
		m.discovery.WithLabelValues(result).Inc()
	}
}

// GetPrometheusMetrics creates api metrics and registers them in reg
func GetPrometheusMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Requests number",
		}, []string{"route"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Request errors number",
		}, []string{"route"}),
		discovery: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "code",
			Name:      "discovery_total",
			Help:      "Wallet code discovery attempts",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.requests,
		m.errors,
		m.discovery,
	)

	return m
}

// NilMetrics will return the non operational api metrics
func NilMetrics() *Metrics {
	return &Metrics{}
}
