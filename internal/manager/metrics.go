package manager

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	transmitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evbus",
			Subsystem: "manager",
			Name:      "transmits_total",
			Help:      "Total number of events passed to Transmit",
		},
		[]string{"variant"},
	)

	invocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evbus",
			Subsystem: "manager",
			Name:      "handler_invocations_total",
			Help:      "Total number of handler invocations",
		},
		[]string{"variant"},
	)

	failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evbus",
			Subsystem: "manager",
			Name:      "handler_failures_total",
			Help:      "Total number of handler invocations that returned an error or panicked",
		},
		[]string{"variant"},
	)

	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evbus",
			Subsystem: "manager",
			Name:      "registrations_total",
			Help:      "Total number of handler entries newly registered",
		},
		[]string{"variant"},
	)

	unregistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evbus",
			Subsystem: "manager",
			Name:      "unregistrations_total",
			Help:      "Total number of handler entries unregistered",
		},
		[]string{"variant"},
	)

	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "evbus",
			Subsystem: "manager",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent invoking the handlers of one transmitted event",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"variant"},
	)
)

func init() {
	prometheus.MustRegister(transmitsTotal, invocationsTotal, failuresTotal,
		registrationsTotal, unregistrationsTotal, dispatchDuration)
}

// meter binds the collectors to one variant label.
type meter struct {
	transmits     prometheus.Counter
	invocations   prometheus.Counter
	failures      prometheus.Counter
	registrations prometheus.Counter
	removals      prometheus.Counter
	dispatch      prometheus.Observer
}

func newMeter(variant string) meter {
	return meter{
		transmits:     transmitsTotal.WithLabelValues(variant),
		invocations:   invocationsTotal.WithLabelValues(variant),
		failures:      failuresTotal.WithLabelValues(variant),
		registrations: registrationsTotal.WithLabelValues(variant),
		removals:      unregistrationsTotal.WithLabelValues(variant),
		dispatch:      dispatchDuration.WithLabelValues(variant),
	}
}

func (m meter) observeDispatch(start time.Time) {
	m.dispatch.Observe(time.Since(start).Seconds())
}
