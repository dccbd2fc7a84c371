// Package metrics provides the concrete metric and tracing backends:
// a Prometheus recorder and an OpenTelemetry tracer.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
)

// PrometheusRecorder implements metrics.MetricRecorder backed by a dedicated
// Prometheus registry.
type PrometheusRecorder struct {
	registry        *prometheus.Registry
	executionsTotal *prometheus.CounterVec
	itemsRead       *prometheus.CounterVec
	itemsWritten    *prometheus.CounterVec
	itemsFiltered   *prometheus.CounterVec
	readSkips       *prometheus.CounterVec
	chunkCommits    *prometheus.CounterVec
	chunkRollbacks  *prometheus.CounterVec
	duration        *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder with all collectors registered on
// a fresh registry. Expose the registry via Registry() to serve /metrics.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{registry: prometheus.NewRegistry()}

	r.executionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_executions_total",
		Help: "Total number of step executions by final status.",
	}, []string{"step", "status"})
	r.itemsRead = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_items_read_total",
		Help: "Total number of items read.",
	}, []string{"step"})
	r.itemsWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_items_written_total",
		Help: "Total number of items written.",
	}, []string{"step"})
	r.itemsFiltered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_items_filtered_total",
		Help: "Total number of items dropped by the processor.",
	}, []string{"step"})
	r.readSkips = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_read_skips_total",
		Help: "Total number of malformed records skipped by the reader.",
	}, []string{"step"})
	r.chunkCommits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_chunk_commits_total",
		Help: "Total number of committed chunks.",
	}, []string{"step"})
	r.chunkRollbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_chunk_rollbacks_total",
		Help: "Total number of failed chunk attempts.",
	}, []string{"step"})
	r.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "batch_execution_duration_seconds",
		Help:    "Duration of step executions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"step"})

	r.registry.MustRegister(
		r.executionsTotal,
		r.itemsRead,
		r.itemsWritten,
		r.itemsFiltered,
		r.readSkips,
		r.chunkCommits,
		r.chunkRollbacks,
		r.duration,
	)
	return r
}

// Registry returns the underlying Prometheus registry for exposition.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *PrometheusRecorder) RecordExecutionStart(ctx context.Context, execution *model.Execution) {
	r.executionsTotal.WithLabelValues(execution.Name, string(model.BatchStatusStarted)).Inc()
}

func (r *PrometheusRecorder) RecordExecutionEnd(ctx context.Context, execution *model.Execution) {
	r.executionsTotal.WithLabelValues(execution.Name, string(execution.Status)).Inc()
	if execution.EndTime != nil {
		r.duration.WithLabelValues(execution.Name).Observe(execution.EndTime.Sub(execution.StartTime).Seconds())
	}
}

func (r *PrometheusRecorder) RecordItemsRead(ctx context.Context, stepName string, count int) {
	r.itemsRead.WithLabelValues(stepName).Add(float64(count))
}

func (r *PrometheusRecorder) RecordItemsWritten(ctx context.Context, stepName string, count int) {
	r.itemsWritten.WithLabelValues(stepName).Add(float64(count))
}

func (r *PrometheusRecorder) RecordItemsFiltered(ctx context.Context, stepName string, count int) {
	r.itemsFiltered.WithLabelValues(stepName).Add(float64(count))
}

func (r *PrometheusRecorder) RecordReadSkips(ctx context.Context, stepName string, count int) {
	r.readSkips.WithLabelValues(stepName).Add(float64(count))
}

func (r *PrometheusRecorder) RecordChunkCommit(ctx context.Context, stepName string, count int) {
	r.chunkCommits.WithLabelValues(stepName).Inc()
}

func (r *PrometheusRecorder) RecordChunkRollback(ctx context.Context, stepName string) {
	r.chunkRollbacks.WithLabelValues(stepName).Inc()
}
