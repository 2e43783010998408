package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bbcd/internal/services"
	"bbcd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRoundsCollected()
	IncPollErrors()
	IncMirrorPushes(success bool)
	ObserveAppendDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	roundsCollected prometheus.Counter
	pollErrors      prometheus.Counter
	mirrorPushes    *prometheus.CounterVec
	appendDuration  prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRoundsCollected() {
	m.roundsCollected.Inc()
}

func (m *MetricsProvider) IncPollErrors() {
	m.pollErrors.Inc()
}

func (m *MetricsProvider) IncMirrorPushes(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.mirrorPushes.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) ObserveAppendDuration(duration time.Duration) {
	m.appendDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.RoundServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bbcd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bbcd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bbcd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bbcd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		roundsCollected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bbcd_rounds_collected_total",
			Help: "Total number of new rounds appended to the round log",
		}),

		pollErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bbcd_poll_errors_total",
			Help: "Total number of failed upstream poll attempts",
		}),

		mirrorPushes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bbcd_mirror_pushes_total",
			Help: "Total number of mirror push attempts by result",
		}, []string{"result"}),

		appendDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bbcd_append_duration_seconds",
			Help:    "Duration of round log append operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "bbcd_rounds_today",
		Help: "Number of rounds recorded in the current day partition",
	}, func() float64 {
		return float64(service.Count())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncRoundsCollected()                              {}
func (n *noopMetrics) IncPollErrors()                                   {}
func (n *noopMetrics) IncMirrorPushes(_ bool)                           {}
func (n *noopMetrics) ObserveAppendDuration(_ time.Duration)            {}
