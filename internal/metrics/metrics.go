// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the analytics pipeline.
//
// It exposes a narrow Backend interface focused on counters and durations,
// with a global, pluggable backend that defaults to a no-op implementation so
// metric calls are always safe even when no real backend is configured. The
// shape mirrors the storage abstraction: the rest of the codebase depends on
// this interface while concrete systems (Prometheus, ...) live in
// subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveDuration(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                              { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures one pipeline stage: latency plus success/failure.
func RecordStage(stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"stage": stage, "status": status}
	backend.IncCounter("mart_stage_total", 1, lbls)
	backend.ObserveDuration("mart_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a record-level counter for the given kind.
//
// Typical kinds mirror the run summary fields:
//   - "orders", "customers", "payments", "items", "reviews" (rows ingested)
//   - "dropped"      (rows lost to parse/decode errors)
//   - "no_customer"  (orders excluded by the base inner match)
//   - "not_qualified"
//   - "output"
//   - "inserted"
func RecordRows(kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("mart_records_total", float64(delta), Labels{"kind": kind})
}

// RecordBatches increments the flushed-batch counter.
func RecordBatches(delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("mart_batches_total", float64(delta), nil)
}
