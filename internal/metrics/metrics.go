// Package metrics exposes Prometheus instrumentation for the ingest
// pipeline. The counters mirror the per-run summary the processor logs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// MetricsNamespace is the namespace for all pipeline metrics.
	MetricsNamespace = "intelligence"

	// MetricsSubsystem is the subsystem for ingest metrics.
	MetricsSubsystem = "ingest"
)

// Metrics holds all Prometheus metrics for the ingest pipeline.
type Metrics struct {
	SignalsTotal       *prometheus.CounterVec
	SalaryParsedTotal  *prometheus.CounterVec
	ClassifiedTotal    *prometheus.CounterVec
	StoreErrorsTotal   prometheus.Counter
	ExpiredTotal       prometheus.Counter
	EnrichmentDuration prometheus.Histogram
}

// New creates and registers the pipeline metrics.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		SignalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "signals_total",
				Help:      "Total number of signals processed, by source and upsert outcome",
			},
			[]string{"source", "outcome"},
		),
		SalaryParsedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "salary_parsed_total",
				Help:      "Salary parse attempts, by result (parsed, sentinel, unparsable)",
			},
			[]string{"result"},
		),
		ClassifiedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "classified_total",
				Help:      "Role classifications, by resulting role type",
			},
			[]string{"role_type"},
		),
		StoreErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "store_errors_total",
				Help:      "Total number of failed store writes",
			},
		),
		ExpiredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "expired_total",
				Help:      "Total number of signals removed by expiry cleanup",
			},
		),
		EnrichmentDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "enrichment_duration_seconds",
				Help:      "Duration of single-signal enrichment",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}
}

// RecordSignal records one processed signal.
func (m *Metrics) RecordSignal(source, outcome string) {
	m.SignalsTotal.WithLabelValues(source, outcome).Inc()
}

// RecordSalaryParse records a salary parse result.
func (m *Metrics) RecordSalaryParse(result string) {
	m.SalaryParsedTotal.WithLabelValues(result).Inc()
}

// RecordClassification records the resulting role type.
func (m *Metrics) RecordClassification(roleType string) {
	m.ClassifiedTotal.WithLabelValues(roleType).Inc()
}

// RecordStoreError records a failed store write.
func (m *Metrics) RecordStoreError() {
	m.StoreErrorsTotal.Inc()
}

// RecordExpired records signals removed by cleanup.
func (m *Metrics) RecordExpired(count int64) {
	m.ExpiredTotal.Add(float64(count))
}

// ObserveEnrichment records the duration of one enrichment.
func (m *Metrics) ObserveEnrichment(seconds float64) {
	m.EnrichmentDuration.Observe(seconds)
}
