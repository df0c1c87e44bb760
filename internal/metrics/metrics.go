package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flightlog service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	FlightsRecordedTotal   prometheus.Counter
	FlightsDiscardedTotal  prometheus.Counter
	TracksImportedTotal    prometheus.Counter
	RadarRecomputeDuration prometheus.Histogram
	LocationTimeoutsTotal  prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackbox_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blackbox_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "blackbox_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackbox_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackbox_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		FlightsRecordedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blackbox_flights_recorded_total",
				Help: "Total completed flight records written to the store",
			},
		),
		FlightsDiscardedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blackbox_flights_discarded_total",
				Help: "Total in-progress flights discarded without a record",
			},
		),
		TracksImportedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blackbox_tracks_imported_total",
				Help: "Total flight records ingested through bulk import",
			},
		),
		RadarRecomputeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "blackbox_radar_recompute_duration_seconds",
				Help:    "Radar statistics recompute time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		LocationTimeoutsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blackbox_location_timeouts_total",
				Help: "Total location fix requests that hit the bounded wait",
			},
		),
	}
}
