package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast service.
type Metrics struct {
	SimulationsTotal   *prometheus.CounterVec // labels: model, outcome={accepted,rejected_year,rejected_range,rejected_fault}
	SimulationDuration prometheus.Histogram

	// Series sourcing metrics.
	SeriesFetches    *prometheus.CounterVec // labels: source={api,store,fallback}, outcome={success,error,empty}
	SeriesRecords    prometheus.Gauge
	RefresherRunning prometheus.Gauge

	// Result publishing metrics.
	ResultsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SimulationsTotal,
		m.SimulationDuration,
		m.SeriesFetches,
		m.SeriesRecords,
		m.RefresherRunning,
		m.ResultsPublished,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SimulationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_forecast",
			Name:      "simulations_total",
			Help:      "Simulation runs by model and outcome.",
		}, []string{"model", "outcome"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_forecast",
			Name:      "simulation_duration_seconds",
			Help:      "Duration of a complete simulation run including trend-line generation.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		SeriesFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_forecast",
			Name:      "series_fetches_total",
			Help:      "Historical series fetch attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		SeriesRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_forecast",
			Name:      "series_records",
			Help:      "Number of historical records currently served.",
		}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_forecast",
			Name:      "refresher_running",
			Help:      "1 when the series refresher loop is active, 0 when shut down.",
		}),
		ResultsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_forecast",
			Name:      "results_published_total",
			Help:      "Simulation results published to the sink topic by outcome.",
		}, []string{"outcome"}),
	}
}
