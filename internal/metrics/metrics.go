// Package metrics holds the Prometheus collectors for the directory service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lawdir"

var (
	ImportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "import_runs_total", Help: "Import runs by mode and result."},
		[]string{"mode", "result"},
	)
	ImportRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "import_rows_total", Help: "Imported rows by mode and outcome."},
		[]string{"mode", "outcome"},
	)
	ImportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "import_duration_seconds", Help: "Import run duration.", Buckets: prometheus.DefBuckets},
		[]string{"mode"},
	)
	Records = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "records", Help: "Number of records in the directory."},
	)
	SyncOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "sync_operations_total", Help: "Remote sync operations by backend, direction, and result."},
		[]string{"backend", "op", "result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

// RegisterCollectors registers every collector with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ImportRuns)
	reg.MustRegister(ImportRows)
	reg.MustRegister(ImportDuration)
	reg.MustRegister(Records)
	reg.MustRegister(SyncOps)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}

// Result returns the label value for an operation outcome.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
