package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "impact_sim"

// Metrics holds the Prometheus counters, histograms, and gauges for the simulation service.
type Metrics struct {
	Simulations        *prometheus.CounterVec   // labels: kind={impact,deflection,trajectory}, outcome={success,invalid,error}
	SimulationDuration *prometheus.HistogramVec // labels: kind

	// Upstream lookup metrics.
	LookupRequests    *prometheus.CounterVec   // labels: provider, outcome={success,error}
	LookupCache       *prometheus.CounterVec   // labels: provider, result={hit,miss}
	UpstreamDuration  *prometheus.HistogramVec // labels: provider
	ElevationSources  *prometheus.CounterVec   // labels: source
	GeoLookupsEnabled prometheus.Gauge

	// Event publishing metrics.
	EventsPublished prometheus.Counter
	EventsFailed    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Simulations,
		m.SimulationDuration,
		m.LookupRequests,
		m.LookupCache,
		m.UpstreamDuration,
		m.ElevationSources,
		m.GeoLookupsEnabled,
		m.EventsPublished,
		m.EventsFailed,
	)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Simulations run by kind and outcome.",
		}, []string{"kind", "outcome"}),
		SimulationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Duration of a simulation including geographic lookups.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		LookupRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_requests_total",
			Help:      "Upstream lookup requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		LookupCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_cache_total",
			Help:      "Lookup cache results by provider.",
		}, []string{"provider", "result"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"provider"}),
		ElevationSources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elevation_source_total",
			Help:      "Resolved elevations by the provider that answered.",
		}, []string{"source"}),
		GeoLookupsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geo_lookups_enabled",
			Help:      "1 when external geographic lookups are enabled, 0 otherwise.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Simulation events written to the sink topic.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Simulation events that could not be published.",
		}),
	}
}

// RecordElevationSource implements domain.FallbackRecorder.
func (m *Metrics) RecordElevationSource(source string) {
	m.ElevationSources.WithLabelValues(source).Inc()
}
