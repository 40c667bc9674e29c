package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the citizen module.
type Metrics struct {
	Registered    prometheus.Counter
	StatusChanges *prometheus.CounterVec
	Exports       prometheus.Counter
}

// New creates and registers all citizen module metrics.
func New() *Metrics {
	return &Metrics{
		Registered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cims_citizens_registered_total",
			Help: "Total citizens registered",
		}),
		StatusChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cims_citizen_status_changes_total",
			Help: "Total workflow status changes by target status",
		}, []string{"status"}),
		Exports: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cims_citizen_exports_total",
			Help: "Total CSV exports of the citizen list",
		}),
	}
}

// IncRegistered records a new registration.
func (m *Metrics) IncRegistered() {
	if m != nil {
		m.Registered.Inc()
	}
}

// IncStatusChange records a workflow move into the given status.
func (m *Metrics) IncStatusChange(status string) {
	if m != nil {
		m.StatusChanges.WithLabelValues(status).Inc()
	}
}

// IncExport records a CSV export.
func (m *Metrics) IncExport() {
	if m != nil {
		m.Exports.Inc()
	}
}
