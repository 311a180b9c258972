// Package monitoring routes unexpected failures to the process-wide error
// tracker. Until Init is called every report is discarded.
package monitoring

import (
	"sync"
	"time"
)

// Monitor reports errors to an external tracker.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// ReportPanic records a recovered panic value.
	ReportPanic(v any)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) ReportPanic(any)                           {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init installs m as the process monitor. A nil m keeps the current one.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

func get() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records err with optional tags. Nil errors are ignored.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	get().CaptureException(err, tags)
}

// CaptureComponentError tags err with the component that produced it.
func CaptureComponentError(component string, err error) {
	CaptureException(err, map[string]string{"component": component})
}

// CaptureRunError ties err to a planning run so reports from the API, the
// metrics sinks and MQTT publication can be correlated.
func CaptureRunError(component, runID string, err error) {
	CaptureException(err, map[string]string{"component": component, "run_id": runID})
}

// Recover reports a panic and re-panics. It must be deferred directly.
func Recover() {
	if r := recover(); r != nil {
		get().ReportPanic(r)
		panic(r)
	}
}

// Flush waits up to d for buffered reports to be sent.
func Flush(d time.Duration) { get().Flush(d) }
