package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_scans_total",
			Help: "Validation attempts by resolved status (valid/invalid/already-used/error).",
		},
		[]string{"status"},
	)

	scanRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_scan_rejected_total",
			Help: "Scan submissions rejected at the gateway before reaching storage.",
		},
		[]string{"reason"},
	)

	scanLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticket_scan_latency_ms",
			Help:    "Validation latency distribution in milliseconds.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	scanLogFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scan_log_append_failures_total",
			Help: "Audit log writes that failed; the validation outcome was still returned.",
		},
	)
)

func init() {
	register(scansTotal, scanRejectedTotal, scanLatencyMs, scanLogFailures)
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncScan(status string) {
	scansTotal.WithLabelValues(norm(status)).Inc()
}

func IncScanRejected(reason string) {
	scanRejectedTotal.WithLabelValues(norm(reason)).Inc()
}

func ObserveScanLatency(ms float64) {
	scanLatencyMs.Observe(ms)
}

func IncScanLogFailure() {
	scanLogFailures.Inc()
}
