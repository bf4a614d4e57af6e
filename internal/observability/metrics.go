package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the locations service.
type Metrics struct {
	// Source fetch metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram

	// Load metrics.
	RecordsLoaded prometheus.Gauge
	LoadFailures  *prometheus.CounterVec // labels: stage={fetch,flatten,export}
	LoadCompleted prometheus.Gauge

	// View metrics.
	ViewActions *prometheus.CounterVec // labels: action={sort,search}

	RecordsExported prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "user_locations",
			Name:      "fetch_requests_total",
			Help:      "randomuser.me API requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "user_locations",
			Name:      "fetch_duration_seconds",
			Help:      "randomuser.me API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "user_locations",
			Name:      "records_loaded",
			Help:      "Number of records held in the view after the initial load.",
		}),
		LoadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "user_locations",
			Name:      "load_failures_total",
			Help:      "Initial load failures by stage.",
		}, []string{"stage"}),
		LoadCompleted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "user_locations",
			Name:      "load_completed",
			Help:      "1 once the initial load has finished, successfully or not.",
		}),
		ViewActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "user_locations",
			Name:      "view_actions_total",
			Help:      "Sort and search actions applied to the view.",
		}, []string{"action"}),
		RecordsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "user_locations",
			Name:      "records_exported_total",
			Help:      "Records published to the Kafka export topic.",
		}),
	}

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.RecordsLoaded,
		m.LoadFailures,
		m.LoadCompleted,
		m.ViewActions,
		m.RecordsExported,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "user_locations", Name: "fetch_requests_total"}, []string{"outcome"}),
		FetchDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "user_locations", Name: "fetch_duration_seconds"}),
		RecordsLoaded:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "user_locations", Name: "records_loaded"}),
		LoadFailures:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "user_locations", Name: "load_failures_total"}, []string{"stage"}),
		LoadCompleted:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "user_locations", Name: "load_completed"}),
		ViewActions:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "user_locations", Name: "view_actions_total"}, []string{"action"}),
		RecordsExported: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "user_locations", Name: "records_exported_total"}),
	}
}
