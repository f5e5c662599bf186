package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus metrics for the wrapped service
type Metrics struct {
	WrappedBuilds *prometheus.CounterVec
	BuildDuration *prometheus.HistogramVec
	SnapshotReads *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec
}
