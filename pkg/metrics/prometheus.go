package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cycles       *prometheus.CounterVec
	cycleSeconds prometheus.Histogram
	lastSuccess  prometheus.Gauge
	stageSize    *prometheus.GaugeVec
	requests     *prometheus.CounterVec
	reqLatency   *prometheus.HistogramVec
	retries      *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	sinkPublish  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder registered with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		cycles: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendscan_cycles_total",
				Help: "Total number of scan cycles by outcome",
			},
			[]string{"outcome"},
		),
		cycleSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "trendscan_cycle_duration_seconds",
				Help:    "Duration of scan cycles in seconds",
				Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1200, 1800},
			},
		),
		lastSuccess: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "trendscan_last_success_timestamp_seconds",
				Help: "Unix time of the last cycle that finished without error",
			},
		),
		stageSize: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trendscan_stage_symbols",
				Help: "Number of symbols leaving each pipeline stage in the last cycle",
			},
			[]string{"stage"},
		),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendscan_provider_requests_total",
				Help: "Total number of market data requests",
			},
			[]string{"endpoint", "result"},
		),
		reqLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendscan_provider_request_seconds",
				Help:    "Market data request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		retries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendscan_provider_retries_total",
				Help: "Total number of retried market data requests",
			},
			[]string{"endpoint"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendscan_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		sinkPublish: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendscan_sink_publish_total",
				Help: "Total number of cycle records handed to sinks",
			},
			[]string{"sink", "result"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendscan_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCycle records a finished cycle.
func (r *Recorder) RecordCycle(outcome string, seconds float64) {
	r.cycles.WithLabelValues(outcome).Inc()
	r.cycleSeconds.Observe(seconds)
	if outcome == "ok" {
		r.lastSuccess.SetToCurrentTime()
	}
}

// RecordStage records how many symbols a stage produced.
func (r *Recorder) RecordStage(stage string, count int) {
	r.stageSize.WithLabelValues(stage).Set(float64(count))
}

// RecordRequest records one provider request.
func (r *Recorder) RecordRequest(endpoint, result string, seconds float64) {
	r.requests.WithLabelValues(endpoint, result).Inc()
	r.reqLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordRetry records a retried provider request.
func (r *Recorder) RecordRetry(endpoint string) {
	r.retries.WithLabelValues(endpoint).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSinkPublish records a sink delivery.
func (r *Recorder) RecordSinkPublish(sink, result string) {
	r.sinkPublish.WithLabelValues(sink, result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
