// Package metrics exposes the Prometheus collectors of the report pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records report pipeline activity.
// Implementations are safe for concurrent use.
type Metrics interface {
	RecordGeneration(reportType, status string)
	RecordGenerationDuration(reportType string, seconds float64)
	RecordDedupHit(reportType string)
	RecordDownload(format string)
	RecordFileSize(format string, bytes int64)
}

type prometheusMetrics struct {
	generatedTotal     *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	dedupHitsTotal     *prometheus.CounterVec
	downloadsTotal     *prometheus.CounterVec
	fileSizeBytes      *prometheus.HistogramVec
}

// New creates the collectors under namespace and registers them with reg.
// It panics if a collector with the same name is already registered.
func New(reg prometheus.Registerer, namespace string) Metrics {
	m := &prometheusMetrics{
		generatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_jobs_total",
				Help:      "Report jobs that reached a terminal state, by type and status.",
			},
			[]string{"report_type", "status"},
		),
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_generation_duration_seconds",
				Help:      "Time from request to terminal state.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"report_type"},
		),
		dedupHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_file_dedup_hits_total",
				Help:      "Rendered artifacts that matched an already stored checksum.",
			},
			[]string{"report_type"},
		),
		downloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_downloads_total",
				Help:      "Successful report downloads by format.",
			},
			[]string{"format"},
		),
		fileSizeBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_file_size_bytes",
				Help:      "Size of newly stored artifacts.",
				// 1KB .. 100MB
				Buckets: prometheus.ExponentialBuckets(1024, 10, 6),
			},
			[]string{"format"},
		),
	}

	reg.MustRegister(
		m.generatedTotal,
		m.generationDuration,
		m.dedupHitsTotal,
		m.downloadsTotal,
		m.fileSizeBytes,
	)

	return m
}

func (m *prometheusMetrics) RecordGeneration(reportType, status string) {
	m.generatedTotal.WithLabelValues(reportType, status).Inc()
}

func (m *prometheusMetrics) RecordGenerationDuration(reportType string, seconds float64) {
	m.generationDuration.WithLabelValues(reportType).Observe(seconds)
}

func (m *prometheusMetrics) RecordDedupHit(reportType string) {
	m.dedupHitsTotal.WithLabelValues(reportType).Inc()
}

func (m *prometheusMetrics) RecordDownload(format string) {
	m.downloadsTotal.WithLabelValues(format).Inc()
}

func (m *prometheusMetrics) RecordFileSize(format string, bytes int64) {
	m.fileSizeBytes.WithLabelValues(format).Observe(float64(bytes))
}
