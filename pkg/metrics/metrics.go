package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	BookingsTotal    *prometheus.CounterVec
	SlotConflicts    prometheus.Counter
	StatusDecisions  *prometheus.CounterVec
	RecordsProjected prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Total number of booking attempts",
		}, []string{"outcome"}),
		SlotConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_conflicts_total",
			Help:      "Total number of bookings lost to a slot race",
		}),
		StatusDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_decisions_total",
			Help:      "Total number of hospital approve/reject decisions",
		}, []string{"decision"}),
		RecordsProjected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patient_records_projected_total",
			Help:      "Total number of patient record projections served to doctors",
		}),
	}
}
