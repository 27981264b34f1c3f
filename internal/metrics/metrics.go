package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brandscope/visibility-bot/internal/platforms"
)

const namespace = "visibilitybot"

// Collector exposes Prometheus metrics for inbound HTTP traffic, platform
// queries and pipeline runs, all on a private registry.
type Collector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	queryTotal      *prometheus.CounterVec
	queryErrors     *prometheus.CounterVec
	runTotal        *prometheus.CounterVec
	runDuration     prometheus.Histogram
	visibilityScore *prometheus.GaugeVec
}

var _ platforms.QueryMetrics = (*Collector)(nil)

// NewCollector constructs a collector with all instruments registered.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "platform",
		Name:      "query_duration_seconds",
		Help:      "Latency distribution for AI platform queries.",
		Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
	}, []string{"platform"})

	queryTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "platform",
		Name:      "queries_total",
		Help:      "Total number of AI platform queries issued.",
	}, []string{"platform"})

	queryErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "platform",
		Name:      "query_errors_total",
		Help:      "Total number of AI platform queries that failed.",
	}, []string{"platform"})

	runTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Total number of analysis pipeline runs by outcome.",
	}, []string{"status"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "End-to-end duration of analysis pipeline runs.",
		Buckets:   []float64{5, 15, 30, 60, 120, 300, 600},
	})

	visibilityScore := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "visibility_score",
		Help:      "Overall visibility score from the most recent run.",
	}, []string{"brand"})

	for _, collector := range []prometheus.Collector{
		requestDuration, requestTotal,
		queryDuration, queryTotal, queryErrors,
		runTotal, runDuration, visibilityScore,
	} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:        registry,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		queryDuration:   queryDuration,
		queryTotal:      queryTotal,
		queryErrors:     queryErrors,
		runTotal:        runTotal,
		runDuration:     runDuration,
		visibilityScore: visibilityScore,
	}, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
func (c *Collector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// ObserveQuery records one platform query, failed or not.
func (c *Collector) ObserveQuery(platform string, duration time.Duration, failed bool) {
	c.queryTotal.WithLabelValues(platform).Inc()
	c.queryDuration.WithLabelValues(platform).Observe(duration.Seconds())
	if failed {
		c.queryErrors.WithLabelValues(platform).Inc()
	}
}

// ObserveRun records one pipeline run with its outcome status.
func (c *Collector) ObserveRun(status string, duration time.Duration) {
	c.runTotal.WithLabelValues(status).Inc()
	c.runDuration.Observe(duration.Seconds())
}

// SetVisibilityScore publishes the latest overall score for a brand.
func (c *Collector) SetVisibilityScore(brand string, score float64) {
	c.visibilityScore.WithLabelValues(brand).Set(score)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
