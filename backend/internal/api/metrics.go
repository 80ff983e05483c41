package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"filmorate/backend/internal/graph"
)

// StatsSource reports point-in-time domain counts
type StatsSource interface {
	Stats() graph.Stats
}

// Metrics holds the Prometheus collectors of the HTTP API and the domain.
// Each instance owns its registry so tests can build as many as they need.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	rateLimited prometheus.Counter
}

// NewMetrics registers request collectors plus gauges that read src on scrape
func NewMetrics(src StatsSource) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filmorate_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filmorate_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filmorate_http_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		}),
	}

	reg.MustRegister(
		m.requests,
		m.latency,
		m.rateLimited,
		collectors.NewGoCollector(),
		domainGauge(src, "filmorate_films", "Films currently stored", func(s graph.Stats) int { return s.Films }),
		domainGauge(src, "filmorate_users", "Users currently stored", func(s graph.Stats) int { return s.Users }),
		domainGauge(src, "filmorate_likes", "Likes recorded across all films", func(s graph.Stats) int { return s.Likes }),
		domainGauge(src, "filmorate_friendships", "Mutual friendships", func(s graph.Stats) int { return s.Friendships }),
	)

	return m
}

func domainGauge(src StatsSource, name, help string, pick func(graph.Stats) int) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: name, Help: help},
		func() float64 { return float64(pick(src.Stats())) },
	)
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records a count and a latency sample per request
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordRateLimited counts a rejected request
func (m *Metrics) RecordRateLimited() {
	m.rateLimited.Inc()
}
