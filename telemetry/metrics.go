// Package telemetry bundles the Prometheus metrics and OpenTelemetry
// tracing wiring exposed around a Simulation: dispatch counts and
// latencies, pending-entry depth, and borrow-conflict counts, plus a
// tracer that wraps each dispatched entry in a span.
package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the kernel's Prometheus metrics and exposes helpers to
// record dispatches and serve a /metrics handler.
type Collector struct {
	gatherer prometheus.Gatherer

	DispatchTotal    *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	PendingEntries   prometheus.Gauge
	BorrowConflicts  prometheus.Counter
}

// NewCollector registers the kernel's metrics against reg, defaulting to
// the global Prometheus registry when nil. Re-registering against the
// same registerer returns the existing collectors rather than erroring,
// so tests and repeated wiring in one process are safe.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eventkernel_dispatch_total",
		Help: "Total number of recorded dispatches, labeled by kind and outcome; InstrumentedStep records one per Step under kind \"step\".",
	}, []string{"kind", "outcome"})
	total, err := registerCounterVec(reg, total, "eventkernel_dispatch_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eventkernel_dispatch_duration_seconds",
		Help:    "Wall-clock time spent in one recorded dispatch, labeled by kind; InstrumentedStep records a whole Step (one scheduler bucket).",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"kind"})
	duration, err = registerHistogramVec(reg, duration, "eventkernel_dispatch_duration_seconds")
	if err != nil {
		return nil, err
	}

	pending, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "eventkernel_pending_entries",
		Help: "Number of entries currently queued across every scheduler bucket.",
	}), "eventkernel_pending_entries")
	if err != nil {
		return nil, err
	}

	conflicts, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventkernel_borrow_conflicts_total",
		Help: "Total number of borrow attempts that failed because the model was already taken.",
	}), "eventkernel_borrow_conflicts_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		DispatchTotal:    total,
		DispatchDuration: duration,
		PendingEntries:   pending,
		BorrowConflicts:  conflicts,
	}, nil
}

// RecordDispatch records one dispatched entry's kind, outcome ("ok" or
// "error"), and how long it took to run.
func (c *Collector) RecordDispatch(kind string, ok bool, seconds float64) {
	if c == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	if c.DispatchTotal != nil {
		c.DispatchTotal.WithLabelValues(kind, outcome).Inc()
	}
	if c.DispatchDuration != nil {
		c.DispatchDuration.WithLabelValues(kind).Observe(seconds)
	}
}

// SetPendingEntries sets the pending-entry gauge, typically driven by
// Simulation.PendingCount after each Step.
func (c *Collector) SetPendingEntries(n int) {
	if c == nil || c.PendingEntries == nil {
		return
	}
	c.PendingEntries.Set(float64(n))
}

// RecordBorrowConflict increments the borrow-conflict counter, driven by a
// ModelMissingError observed at a re-entrant borrow site.
func (c *Collector) RecordBorrowConflict() {
	if c == nil || c.BorrowConflicts == nil {
		return
	}
	c.BorrowConflicts.Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
