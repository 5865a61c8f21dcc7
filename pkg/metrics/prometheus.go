package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scoresTotal *prometheus.CounterVec
	conviction  *prometheus.GaugeVec
	scansTotal  prometheus.Counter
	scanAssets  prometheus.Gauge
	scanFailed  prometheus.Counter
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scoresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradepilotx_scores_computed_total",
				Help: "Total number of conviction scores computed",
			},
			[]string{"symbol"},
		),
		conviction: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tradepilotx_conviction_score",
				Help: "Last computed conviction total for a symbol",
			},
			[]string{"symbol"},
		),
		scansTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tradepilotx_scans_total",
				Help: "Total number of watchlist scans",
			},
		),
		scanAssets: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradepilotx_scan_assets",
				Help: "Number of assets in the last watchlist scan",
			},
		),
		scanFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tradepilotx_scan_assets_failed_total",
				Help: "Total number of assets that failed within a scan",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradepilotx_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradepilotx_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScore records one computed conviction score.
func (r *Recorder) RecordScore(symbol string, total int) {
	r.scoresTotal.WithLabelValues(symbol).Inc()
	r.conviction.WithLabelValues(symbol).Set(float64(total))
}

// RecordScan records a completed watchlist scan.
func (r *Recorder) RecordScan(assets, failed int) {
	r.scansTotal.Inc()
	r.scanAssets.Set(float64(assets))
	if failed > 0 {
		r.scanFailed.Add(float64(failed))
	}
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
