package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wind_analytics"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard service.
type Metrics struct {
	// Calculator metrics.
	Calculations        *prometheus.CounterVec // labels: outcome={ok,invalid}
	CalculationDuration prometheus.Histogram

	// Dataset metrics.
	DatasetStates *prometheus.GaugeVec // labels: tier
	Ready         prometheus.Gauge

	// Feedback metrics.
	Feedback *prometheus.CounterVec // labels: outcome={published,logged,invalid,error}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: method={forward,reverse}, outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec   // labels: method={forward,reverse}, result={hit,miss}
	GeocodeAPIDuration *prometheus.HistogramVec // labels: method={forward,reverse}
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Economics calculations by outcome.",
		}, []string{"outcome"}),
		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Duration of a validated economics calculation.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		DatasetStates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_states",
			Help:      "Number of states loaded per potential tier.",
		}, []string{"tier"}),
		Ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ready",
			Help:      "1 once the dataset is loaded and map labels are warmed, 0 otherwise.",
		}),
		Feedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_total",
			Help:      "Feedback submissions by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when marker place labels are geocoded, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.Calculations,
		m.CalculationDuration,
		m.DatasetStates,
		m.Ready,
		m.Feedback,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Calculations:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "calculations_total"}, []string{"outcome"}),
		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "calculation_duration_seconds"}),
		DatasetStates:       prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: "dataset_states"}, []string{"tier"}),
		Ready:               prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "ready"}),
		Feedback:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "feedback_total"}, []string{"outcome"}),
		GeocodeRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_requests_total"}, []string{"method", "outcome"}),
		GeocodeCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_cache_total"}, []string{"method", "result"}),
		GeocodeAPIDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "geocode_api_duration_seconds"}, []string{"method"}),
		GeocodeEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "geocode_enabled"}),
	}
}
