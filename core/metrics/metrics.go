package metrics

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/kilianp07/berthplan/core/model"
)

// PlanEvent describes one completed planning run.
type PlanEvent struct {
	RunID      string
	Source     string
	Time       time.Time
	Duration   time.Duration
	Schedules  []model.Schedule
	Unassigned []model.Vessel
}

// TotalCost sums the cost of every committed schedule.
func (e PlanEvent) TotalCost() int64 {
	var total int64
	for _, s := range e.Schedules {
		total += s.TotalCost
	}
	return total
}

// PlanRecorder records planning runs for observability purposes.
type PlanRecorder interface {
	RecordPlan(ev PlanEvent) error
}

// InputSizeRecorder records the size of the datasets a run was fed.
type InputSizeRecorder interface {
	RecordInputSize(berths, vessels int) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error     { return nil }
func (NopSink) RecordInputSize(int, int) error { return nil }

// MultiSink fans out records to multiple sinks.
type MultiSink struct {
	Sinks []PlanRecorder
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...PlanRecorder) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPlan(ev PlanEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordInputSize forwards to the sinks that support it.
func (m *MultiSink) RecordInputSize(berths, vessels int) error {
	for _, s := range m.Sinks {
		if r, ok := s.(InputSizeRecorder); ok {
			if err := r.RecordInputSize(berths, vessels); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases r and, for a MultiSink, every child sink. Sinks may
// implement io.Closer or a plain Close().
func Close(r PlanRecorder) error {
	switch c := r.(type) {
	case *MultiSink:
		var errs []error
		for _, s := range c.Sinks {
			errs = append(errs, Close(s))
		}
		return errors.Join(errs...)
	case io.Closer:
		return c.Close()
	case interface{ Close() }:
		c.Close()
	}
	return nil
}

type sourceKey struct{}

// WithSource tags ctx with the origin of a planning run (cli, api, startup).
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// SourceFromContext returns the run origin set by WithSource, or "unknown".
func SourceFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok && s != "" {
		return s
	}
	return "unknown"
}
