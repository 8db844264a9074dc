package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder counts service operations and their latency on a private
// registry so the command can dump them to a node-exporter textfile on exit.
type PrometheusRecorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheusRecorder builds a recorder with its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roombook",
			Name:      "operations_total",
			Help:      "Room registry operations by outcome.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "roombook",
			Name:      "operation_duration_seconds",
			Help:      "Latency of room registry operations.",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		}, []string{"operation"}),
	}
	r.registry.MustRegister(r.operations, r.durations)
	return r
}

// Observe implements MetricsRecorder.
func (r *PrometheusRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// Registry exposes the underlying registry for gathering.
func (r *PrometheusRecorder) Registry() *prometheus.Registry { return r.registry }

// Counter returns the counter for one operation outcome. Used by tests.
func (r *PrometheusRecorder) Counter(operation string, success bool) prometheus.Counter {
	status := "error"
	if success {
		status = "success"
	}
	return r.operations.WithLabelValues(operation, status)
}

// WriteTextfile writes all metrics in the text exposition format to path.
func (r *PrometheusRecorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
