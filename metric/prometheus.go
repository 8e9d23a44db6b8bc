package metric

import (
	"time"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "seqpack"

// PrometheusCollector records engine activity as Prometheus metrics.
// It satisfies seqpack.MetricsCollector.
type PrometheusCollector struct {
	builds        *prometheus.CounterVec
	buildSymbols  *prometheus.CounterVec
	buildLatency  *prometheus.HistogramVec
	searches      *prometheus.CounterVec
	searchLatency *prometheus.HistogramVec
	matches       *prometheus.CounterVec
	chunks        prometheus.Histogram
}

// NewPrometheusCollector creates the metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Sequences built, by alphabet and outcome.",
		}, []string{"alphabet", "status"}),
		buildSymbols: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_symbols_total",
			Help:      "Symbols packed by successful builds.",
		}, []string{"alphabet"}),
		buildLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Build latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"alphabet"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches run, by operation and outcome.",
		}, []string{"op", "status"}),
		searchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Matches returned by successful searches.",
		}, []string{"op"}),
		chunks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_chunks",
			Help:      "Chunks scheduled per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}

	if reg != nil {
		reg.MustRegister(c.builds, c.buildSymbols, c.buildLatency,
			c.searches, c.searchLatency, c.matches, c.chunks)
	}
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordBuild records one build.
func (c *PrometheusCollector) RecordBuild(kind alphabet.Kind, symbols int, d time.Duration, err error) {
	label := kind.String()
	c.builds.WithLabelValues(label, status(err)).Inc()
	c.buildLatency.WithLabelValues(label).Observe(d.Seconds())
	if err == nil {
		c.buildSymbols.WithLabelValues(label).Add(float64(symbols))
	}
}

// RecordSearch records one search.
func (c *PrometheusCollector) RecordSearch(op string, matches int, d time.Duration, err error) {
	c.searches.WithLabelValues(op, status(err)).Inc()
	c.searchLatency.WithLabelValues(op).Observe(d.Seconds())
	if err == nil {
		c.matches.WithLabelValues(op).Add(float64(matches))
	}
}

// RecordChunks records the chunk count of one search.
func (c *PrometheusCollector) RecordChunks(count int) {
	c.chunks.Observe(float64(count))
}
