package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wildfire_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment pipeline, the predictor, and the query API.
type Metrics struct {
	ReadingsConsumed    prometheus.Counter
	AssessmentsProduced prometheus.Counter
	InvalidReadings     prometheus.Counter
	PipelineRunning     prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Assessments by outcome level, across the pipeline and the API.
	RiskLevels *prometheus.CounterVec // labels: level={very_low,...,extreme}

	// Predictor metrics.
	PredictorRequests *prometheus.CounterVec   // labels: source={ai,deterministic}, outcome={success,error,fallback}
	PredictorCache    *prometheus.CounterVec   // labels: result={hit,miss}
	PredictorDuration prometheus.Histogram
	PredictorEnabled  prometheus.Gauge

	// API metrics.
	APIRequestDuration *prometheus.HistogramVec // labels: route, status
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}

func newMetrics() *Metrics {
	return &Metrics{
		ReadingsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_consumed_total",
			Help:      "Total station readings read from the source topic.",
		}),
		AssessmentsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_produced_total",
			Help:      "Total risk assessments written to the sink topic.",
		}),
		InvalidReadings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_readings_total",
			Help:      "Total readings skipped because they failed parsing or validation.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of readings per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		RiskLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_by_level_total",
			Help:      "Risk assessments by resulting level.",
		}, []string{"level"}),
		PredictorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictor_requests_total",
			Help:      "Risk predictions by source and outcome.",
		}, []string{"source", "outcome"}),
		PredictorCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictor_cache_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
		PredictorDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "predictor_api_duration_seconds",
			Help:      "Remote prediction service request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}),
		PredictorEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "predictor_enabled",
			Help:      "1 when the remote predictor is enabled, 0 otherwise.",
		}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "HTTP API request duration by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ReadingsConsumed,
		m.AssessmentsProduced,
		m.InvalidReadings,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.RiskLevels,
		m.PredictorRequests,
		m.PredictorCache,
		m.PredictorDuration,
		m.PredictorEnabled,
		m.APIRequestDuration,
	}
}
