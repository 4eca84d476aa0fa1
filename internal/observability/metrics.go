package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// solution service.
type Metrics struct {
	SolutionsComputed prometheus.Counter
	SolveErrors       prometheus.Counter
	ParseErrors       prometheus.Counter
	SolveDuration     prometheus.Histogram

	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}

	SolutionRequests *prometheus.CounterVec // labels: outcome={success,bad_request,error}

	// Suite pipeline metrics.
	PipelineRunning         prometheus.Gauge
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SolutionsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swashes",
			Name:      "solutions_computed_total",
			Help:      "Total analytic solutions computed by the tool.",
		}),
		SolveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swashes",
			Name:      "solve_errors_total",
			Help:      "Total failed tool invocations.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swashes",
			Name:      "parse_errors_total",
			Help:      "Total tool outputs that could not be parsed.",
		}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swashes",
			Name:      "solve_duration_seconds",
			Help:      "Duration of one tool invocation including parsing.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swashes",
			Name:      "cache_total",
			Help:      "Solution cache lookups by result.",
		}, []string{"result"}),
		SolutionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swashes",
			Name:      "solution_requests_total",
			Help:      "HTTP solution requests by outcome.",
		}, []string{"outcome"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "swashes",
			Name:      "pipeline_running",
			Help:      "1 when the suite pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swashes",
			Name:      "batch_size",
			Help:      "Number of cases per suite batch.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swashes",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete suite batch: solve, parse, and load.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}

	prometheus.MustRegister(
		m.SolutionsComputed,
		m.SolveErrors,
		m.ParseErrors,
		m.SolveDuration,
		m.CacheLookups,
		m.SolutionRequests,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SolutionsComputed:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "swashes", Name: "solutions_computed_total"}),
		SolveErrors:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "swashes", Name: "solve_errors_total"}),
		ParseErrors:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "swashes", Name: "parse_errors_total"}),
		SolveDuration:           prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "swashes", Name: "solve_duration_seconds"}),
		CacheLookups:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "swashes", Name: "cache_total"}, []string{"result"}),
		SolutionRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "swashes", Name: "solution_requests_total"}, []string{"outcome"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "swashes", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "swashes", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "swashes", Name: "batch_processing_duration_seconds"}),
	}
}
