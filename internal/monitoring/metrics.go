package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Scan metrics
	scansTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fx_scanner_scans_total",
			Help: "Total number of completed scan cycles",
		},
	)

	scanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fx_scanner_scan_duration_seconds",
			Help:    "Distribution of full scan cycle durations",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Decision metrics
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_scanner_decisions_total",
			Help: "Decisions emitted by symbol and action",
		},
		[]string{"symbol", "action"},
	)

	decisionConfidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fx_scanner_decision_confidence",
			Help: "Confidence of the latest decision per symbol",
		},
		[]string{"symbol"},
	)

	// Market state metrics
	instrumentRegime = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fx_scanner_regime",
			Help: "Latest regime per symbol (0=ranging, 1=trending, 2=volatile)",
		},
		[]string{"symbol"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_scanner_errors_total",
			Help: "Total number of errors by category",
		},
		[]string{"category"},
	)
)

func init() {
	prometheus.MustRegister(scansTotal)
	prometheus.MustRegister(scanDuration)
	prometheus.MustRegister(decisionsTotal)
	prometheus.MustRegister(decisionConfidence)
	prometheus.MustRegister(instrumentRegime)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles the Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordScan records one completed scan cycle
func RecordScan(durationSeconds float64) {
	scansTotal.Inc()
	scanDuration.Observe(durationSeconds)
}

// RecordDecision records an emitted decision
func RecordDecision(symbol, action string, confidence float64) {
	decisionsTotal.WithLabelValues(symbol, action).Inc()
	decisionConfidence.WithLabelValues(symbol).Set(confidence)
}

// UpdateRegime updates the regime gauge for a symbol
func UpdateRegime(symbol string, regime int) {
	instrumentRegime.WithLabelValues(symbol).Set(float64(regime))
}

// RecordError records an error by category
func RecordError(category string) {
	errorsTotal.WithLabelValues(category).Inc()
}
