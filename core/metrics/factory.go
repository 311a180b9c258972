package metrics

import (
	"fmt"

	"github.com/kilianp07/berthplan/core/factory"
)

var sinkRegistry = factory.NewRegistry[PlanRecorder]()

// RegisterSink adds a sink factory identified by name.
func RegisterSink(name string, f factory.Factory[PlanRecorder]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink names.
func SinkTypes() []string { return sinkRegistry.Names() }

// NewPlanRecorder builds the configured sinks. Entries of type "nop" are
// skipped; nothing left yields a NopSink and a single sink is returned
// unwrapped. Sinks built before a failing entry are closed.
func NewPlanRecorder(cfgs []factory.ModuleConfig) (PlanRecorder, error) {
	var sinks []PlanRecorder
	for i, c := range cfgs {
		if c.Type == "nop" {
			continue
		}
		s, err := sinkRegistry.Create(c)
		if err != nil {
			_ = Close(NewMultiSink(sinks...))
			return nil, fmt.Errorf("metrics.sinks[%d] (%s): %w", i, c.Type, err)
		}
		sinks = append(sinks, s)
	}
	switch len(sinks) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
