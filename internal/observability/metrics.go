package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the scoring service.
// A nil *Metrics is valid and turns every recording method into a no-op, so
// adapters can be constructed without observability in tests.
type Metrics struct {
	CacheLookups     *prometheus.CounterVec // labels: source={crime,weather}, result={hit,miss}
	UpstreamRequests *prometheus.CounterVec // labels: source, outcome={success,auth_failed,rate_limited,unavailable,bad_payload}
	FallbackServed   *prometheus.CounterVec // labels: source

	Assessments        prometheus.Counter
	AssessmentDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CacheLookups,
		m.UpstreamRequests,
		m.FallbackServed,
		m.Assessments,
		m.AssessmentDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saferov",
			Name:      "cache_lookups_total",
			Help:      "Adapter cache lookups by data source and result.",
		}, []string{"source", "result"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saferov",
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by data source and outcome.",
		}, []string{"source", "outcome"}),
		FallbackServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saferov",
			Name:      "fallback_served_total",
			Help:      "Requests answered with synthetic fallback data by source.",
		}, []string{"source"}),
		Assessments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saferov",
			Name:      "assessments_total",
			Help:      "Total completed safety assessments.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "saferov",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a full safety assessment including upstream calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// CacheLookup records a cache hit or miss for a data source.
func (m *Metrics) CacheLookup(source string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(source, result).Inc()
}

// UpstreamOutcome records the outcome of one upstream request.
func (m *Metrics) UpstreamOutcome(source, outcome string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(source, outcome).Inc()
}

// Fallback records that a request was served synthetic data.
func (m *Metrics) Fallback(source string) {
	if m == nil {
		return
	}
	m.FallbackServed.WithLabelValues(source).Inc()
}

// AssessmentCompleted records one finished assessment and its duration in seconds.
func (m *Metrics) AssessmentCompleted(seconds float64) {
	if m == nil {
		return
	}
	m.Assessments.Inc()
	m.AssessmentDuration.Observe(seconds)
}
