// Package metrics exposes Prometheus collectors for quiz generation, the
// recommendation catalog and the HTTP layer.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Generation
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcq_generation_total",
			Help: "Quiz generation attempts by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcq_generation_duration_seconds",
			Help:    "Latency of calls to the generation source",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"provider"},
	)

	QuestionsParsed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mcq_questions_parsed",
			Help:    "Questions recovered from a single generation response",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)

	ParseAbandonedBlocks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mcq_parse_abandoned_blocks_total",
			Help: "Question blocks dropped by the parser for missing options",
		},
	)

	QuizCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcq_cache_lookups_total",
			Help: "Generated quiz cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Catalog
	RecommendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_recommend_total",
			Help: "Recommendation lookups by outcome",
		},
		[]string{"outcome"}, // ok, unknown_title
	)

	CatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "book_catalog_rows",
			Help: "Rows loaded into the recommendation snapshot per table",
		},
		[]string{"table"},
	)

	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
)

// RecordHTTP counts one finished request.
func RecordHTTP(method, route string, status int) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
