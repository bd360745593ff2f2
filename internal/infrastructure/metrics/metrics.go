package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the reminder sweep
type Metrics struct {
	SweepsTotal      prometheus.Counter
	SweepFailures    prometheus.Counter
	RemindersSent    prometheus.Counter
	ReminderFailures prometheus.Counter
	SweepDuration    prometheus.Histogram
}

// New creates and registers the sweep metrics on the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SweepsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminder_sweeps_total",
			Help: "Number of sweep invocations, including lease-skipped ones.",
		}),
		SweepFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminder_sweep_failures_total",
			Help: "Number of sweeps that failed before processing any meeting.",
		}),
		RemindersSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Number of reminders successfully delivered and recorded.",
		}),
		ReminderFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminder_delivery_failures_total",
			Help: "Number of reminder delivery attempts that failed.",
		}),
		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reminder_sweep_duration_seconds",
			Help:    "Duration of completed sweep invocations.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
