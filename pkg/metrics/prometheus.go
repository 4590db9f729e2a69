package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	collectorDuration *prometheus.HistogramVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	sourceScore       *prometheus.GaugeVec
	errorsTotal       *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		collectorDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketlens_collector_duration_seconds",
				Help:    "Duration of source collector runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_cache_hits_total",
				Help: "Snapshot cache hits per source",
			},
			[]string{"source"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_cache_misses_total",
				Help: "Snapshot cache misses per source",
			},
			[]string{"source"},
		),
		sourceScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketlens_source_score",
				Help: "Last computed score per source and ticker",
			},
			[]string{"source", "ticker"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordCollectorDuration records how long one collector run took.
func (r *Recorder) RecordCollectorDuration(source string, seconds float64) {
	r.collectorDuration.WithLabelValues(source).Observe(seconds)
}

// RecordCacheHit records a snapshot cache hit.
func (r *Recorder) RecordCacheHit(source string) {
	r.cacheHits.WithLabelValues(source).Inc()
}

// RecordCacheMiss records a snapshot cache miss.
func (r *Recorder) RecordCacheMiss(source string) {
	r.cacheMisses.WithLabelValues(source).Inc()
}

// RecordSourceScore records the last score computed for a source.
func (r *Recorder) RecordSourceScore(source, ticker string, score float64) {
	r.sourceScore.WithLabelValues(source, ticker).Set(score)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
