package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by route template and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherstyle_http_requests_total",
			Help: "HTTP requests served, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes request latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherstyle_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	// WeatherCacheLookups counts cache hits and misses.
	WeatherCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherstyle_weather_cache_lookups_total",
			Help: "Weather cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)

	// UpstreamCalls counts calls to weather, AI and storage providers.
	UpstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherstyle_upstream_calls_total",
			Help: "Upstream calls by provider, operation and outcome.",
		},
		[]string{"provider", "operation", "outcome"},
	)

	// FallbacksServed counts dummy payloads substituted for failed upstream calls.
	FallbacksServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherstyle_fallbacks_total",
			Help: "Fallback payloads served, by kind.",
		},
		[]string{"kind"},
	)

	// CircuitBreakerState tracks breaker state (0 closed, 1 half-open, 2 open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weatherstyle_circuit_breaker_state",
			Help: "Circuit breaker state: 0=closed, 1=half-open, 2=open.",
		},
		[]string{"name"},
	)
)
