package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AnalyzeInFlight is the current number of analyze requests being served.
	AnalyzeInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "veganscan",
		Subsystem: "relay",
		Name:      "analyze_in_flight",
		Help:      "Current number of analyze requests being processed.",
	})

	// AnalyzeTotal counts analyze requests by outcome.
	AnalyzeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "veganscan",
		Subsystem: "relay",
		Name:      "analyze_total",
		Help:      "Total number of analyze requests, labeled by result.",
	}, []string{"result"})

	// AnalyzeDurationSeconds is end-to-end time per analyze request,
	// dominated by the external model call.
	AnalyzeDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "veganscan",
		Subsystem: "relay",
		Name:      "analyze_duration_seconds",
		Help:      "End-to-end time to serve an analyze request.",
		// Keep buckets fairly coarse to avoid high-cardinality time series.
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60, 120},
	}, []string{"result"})
)

// Result label values for AnalyzeTotal and AnalyzeDurationSeconds.
const (
	ResultOK          = "ok"
	ResultMissing     = "missing_input"
	ResultUnsupported = "unsupported_format"
	ResultFailed      = "analysis_failed"
)

// Register registers relay metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AnalyzeInFlight,
			AnalyzeTotal,
			AnalyzeDurationSeconds,
		)
	})
}
