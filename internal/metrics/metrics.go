package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Counter: documents served straight from the cache store.
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mirage_cache_hits_total",
			Help: "Total number of cache hits.",
		},
	)

	// Counter: requests that required generation.
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mirage_cache_misses_total",
			Help: "Total number of cache misses.",
		},
	)

	// Counter: completed backend generation jobs, by outcome.
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirage_generations_total",
			Help: "Total number of generation jobs, by outcome.",
		},
		[]string{"outcome"},
	)

	// Counter: callers that joined an already in-flight job.
	FlightJoinsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mirage_flight_joins_total",
			Help: "Total number of requests deduplicated into an in-flight job.",
		},
	)

	// Histogram: end-to-end generation latency in seconds.
	GenerationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mirage_generation_duration_seconds",
			Help:    "Generation job latency in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// Histogram: HTTP request latency in seconds.
	HTTPLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mirage_http_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"path", "method", "status_code"},
	)
)

// Register is called once in main() to register metrics.
func Register() {
	prometheus.MustRegister(
		CacheHitsTotal,
		CacheMissesTotal,
		GenerationsTotal,
		FlightJoinsTotal,
		GenerationDurationSeconds,
		HTTPLatencySeconds,
	)
}

// Handler exposes the /metrics endpoint for Prometheus to scrape.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware measures latency for each HTTP request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		HTTPLatencySeconds.
			WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rec.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}
