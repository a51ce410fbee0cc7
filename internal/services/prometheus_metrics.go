package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	MetricEntityOperation    = "entity_operation"
	MetricExpenseTagsDropped = "expense_tags_dropped"
	MetricExportGenerated    = "export_generated"
	MetricAPIError           = "api_error"
	MetricExportRows         = "export_rows"
	MetricSummaryTotal       = "summary_total"
)

type PrometheusMetrics struct {
	entityOperations  *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	tagsDropped       prometheus.Counter
	exportsTotal      *prometheus.CounterVec
	exportRows        prometheus.Histogram
	apiErrors         *prometheus.CounterVec
	lastSummaryTotal  prometheus.Gauge
}

// NewPrometheusMetrics registers the collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		entityOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kaasu_entity_operations_total",
				Help: "Total number of category, tag and expense operations",
			},
			[]string{"entity", "operation", "status"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kaasu_operation_duration_milliseconds",
				Help:    "Service operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		tagsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "kaasu_expense_tags_dropped_total",
				Help: "Total number of unknown tag ids ignored on expense writes",
			},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kaasu_exports_total",
				Help: "Total number of expense exports by format",
			},
			[]string{"format"},
		),
		exportRows: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kaasu_export_rows",
				Help:    "Number of expenses written per export",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		apiErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kaasu_api_errors_total",
				Help: "Total number of API error responses",
			},
			[]string{"code", "status"},
		),
		lastSummaryTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "kaasu_summary_last_total",
				Help: "Overall spending total of the most recent summary request",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricEntityOperation:
		m.entityOperations.WithLabelValues(tags["entity"], tags["operation"], tags["status"]).Inc()
	case MetricExpenseTagsDropped:
		m.tagsDropped.Inc()
	case MetricExportGenerated:
		if format := tags["format"]; format != "" {
			m.exportsTotal.WithLabelValues(format).Inc()
		}
	case MetricAPIError:
		m.apiErrors.WithLabelValues(tags["code"], tags["status"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.operationDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricExportRows:
		m.exportRows.Observe(value)
	case MetricSummaryTotal:
		m.lastSummaryTotal.Set(value)
	}
}

// NoopMetrics discards everything. It backs code paths that run without a
// metrics registry, such as CLI subcommands.
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(string, map[string]string) {}
func (NoopMetrics) RecordProcessingTime(string, time.Duration) {}
func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}

// recordOperation counts one entity operation and its latency
func recordOperation(metrics MetricsRecorderInterface, entity, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.IncrementCounter(MetricEntityOperation, map[string]string{
		"entity":    entity,
		"operation": operation,
		"status":    status,
	})
	metrics.RecordProcessingTime(entity+"."+operation, time.Since(start))
}
