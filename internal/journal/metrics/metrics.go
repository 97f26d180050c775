package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for journal reconciliation and Crossref
// lookups.
type Metrics struct {
	ReconcileOutcomes  *prometheus.CounterVec
	ReconcileDuration  prometheus.Histogram
	ResolveCandidates  prometheus.Histogram
	CrossrefFetches    *prometheus.CounterVec
	CrossrefCacheHits  prometheus.Counter
	CrossrefCacheMiss  prometheus.Counter
	EventPublishErrors prometheus.Counter
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration panics.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReconcileOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "journal_reconcile_total",
			Help: "Reconciliations by outcome (created, updated, unchanged, insufficient_data)",
		}, []string{"outcome"}),
		ReconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "journal_reconcile_duration_seconds",
			Help:    "Duration of a full resolve-and-merge pass",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ResolveCandidates: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "journal_resolve_candidates",
			Help:    "Number of distinct stored journals scored per resolve",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		}),
		CrossrefFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "journal_crossref_fetch_total",
			Help: "Crossref work fetches by result (ok, not_found, unavailable, error)",
		}, []string{"result"}),
		CrossrefCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "journal_crossref_cache_hits_total",
			Help: "Crossref work documents served from cache",
		}),
		CrossrefCacheMiss: factory.NewCounter(prometheus.CounterOpts{
			Name: "journal_crossref_cache_misses_total",
			Help: "Crossref work lookups not found in cache",
		}),
		EventPublishErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "journal_event_publish_errors_total",
			Help: "Journal change events that could not be published",
		}),
	}
}

// IncrementOutcome records a reconciliation outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	m.ReconcileOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveReconcile records the duration of a reconciliation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveReconcile(start time.Time) {
	m.ReconcileDuration.Observe(time.Since(start).Seconds())
}

// ObserveResolveCandidates records how many stored journals were scored.
func (m *Metrics) ObserveResolveCandidates(n int) {
	m.ResolveCandidates.Observe(float64(n))
}

// IncrementCrossrefFetch records a Crossref fetch result.
func (m *Metrics) IncrementCrossrefFetch(result string) {
	m.CrossrefFetches.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordCacheHit() {
	m.CrossrefCacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	m.CrossrefCacheMiss.Inc()
}

func (m *Metrics) IncrementEventPublishError() {
	m.EventPublishErrors.Inc()
}
