package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the extraction engine.
type Metrics struct {
	Registry        *prometheus.Registry
	PagesTotal      *prometheus.CounterVec
	ExtractDuration prometheus.Histogram
	FieldMisses     *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_pages_total",
			Help: "Total pages processed by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_extract_duration_seconds",
			Help:    "Fetch plus extraction latency per operation.",
			Buckets: prometheus.DefBuckets,
		},
	)
	misses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_field_misses_total",
			Help: "Product fields left empty because their heuristic missed.",
		},
		[]string{"field"},
	)

	registry.MustRegister(pages, duration, misses)

	return &Metrics{
		Registry:        registry,
		PagesTotal:      pages,
		ExtractDuration: duration,
		FieldMisses:     misses,
	}
}

// IncPage increments the processed-pages counter.
func (m *Metrics) IncPage(operation, outcome string) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveDuration records one fetch-and-extract duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.ExtractDuration.Observe(d.Seconds())
}

// IncFieldMiss increments the miss counter for a field label.
func (m *Metrics) IncFieldMiss(field string) {
	if m == nil {
		return
	}
	m.FieldMisses.WithLabelValues(field).Inc()
}
