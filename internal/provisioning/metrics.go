package provisioning

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Phase results recorded in metrics.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics records phase outcomes in a dedicated registry. Hooks are
// short-lived processes, so the registry is flushed to a textfile instead
// of being scraped.
type Metrics struct {
	registry      *prometheus.Registry
	phaseTotal    *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the provisioning collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ldap_fixture",
				Subsystem: "provisioning",
				Name:      "phase_total",
				Help:      "Total number of provisioning phases run by phase and result",
			},
			[]string{"phase", "result"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ldap_fixture",
				Subsystem: "provisioning",
				Name:      "phase_duration_seconds",
				Help:      "Duration of provisioning phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"phase"},
		),
	}
	m.registry.MustRegister(m.phaseTotal, m.phaseDuration)
	return m
}

// ObservePhase records one phase run. Safe on a nil receiver.
func (m *Metrics) ObservePhase(phase, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.phaseTotal.WithLabelValues(phase, result).Inc()
	m.phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the registry in the text exposition format for a
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
