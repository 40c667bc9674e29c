package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the dashboard module.
type Metrics struct {
	BuildLatency prometheus.Histogram
	RecordsRead  prometheus.Histogram
}

// New creates and registers all dashboard module metrics.
func New() *Metrics {
	return &Metrics{
		BuildLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cims_dashboard_build_duration_seconds",
			Help:    "Duration of full report assembly including record loading",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RecordsRead: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cims_dashboard_records_read",
			Help:    "Citizen records read per report build",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		}),
	}
}

// ObserveBuild records one report assembly.
func (m *Metrics) ObserveBuild(d time.Duration, records int) {
	if m != nil {
		m.BuildLatency.Observe(d.Seconds())
		m.RecordsRead.Observe(float64(records))
	}
}
