package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/berthplan/core/factory"
	coremetrics "github.com/kilianp07/berthplan/core/metrics"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.PlanRecorder, error) {
		return coremetrics.NopSink{}, nil
	})

	// The /metrics endpoint is served separately from metrics.prometheus_addr.
	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.PlanRecorder, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.PlanRecorder, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})

	_ = coremetrics.RegisterSink("jsonl", func(conf map[string]any) (coremetrics.PlanRecorder, error) {
		c := struct {
			Path       string `json:"path"`
			MaxSizeMB  int    `json:"max_size_mb"`
			MaxBackups int    `json:"max_backups"`
			MaxAgeDays int    `json:"max_age_days"`
		}{Path: "logs/plan_runs.jsonl", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 30}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewJSONLSink(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	})
}
