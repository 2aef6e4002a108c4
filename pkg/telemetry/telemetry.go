package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mastermind_http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mastermind_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	calendarsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mastermind_calendars_generated_total",
		Help: "Calendars generated since start.",
	})

	generationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mastermind_calendar_generation_seconds",
		Help:    "End-to-end calendar generation latency.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
	})

	qualityScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mastermind_calendar_quality_score",
		Help:    "Quality score of generated calendars.",
		Buckets: []float64{2, 4, 6, 7, 8, 9, 9.5, 10},
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, calendarsGenerated, generationDuration, qualityScore)
}

// ObserveGeneration records a completed calendar generation.
func ObserveGeneration(d time.Duration, score float64) {
	calendarsGenerated.Inc()
	generationDuration.Observe(d.Seconds())
	qualityScore.Observe(score)
}

// Middleware records request counts and latency per route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(srw, r)
		httpRequests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(srw.status)).Inc()
		httpDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
