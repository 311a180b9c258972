package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/berthplan/core/factory"
	metrics "github.com/kilianp07/berthplan/core/metrics"
	_ "github.com/kilianp07/berthplan/infra/metrics"
)

func TestSinkTypes(t *testing.T) {
	assert.Subset(t, metrics.SinkTypes(), []string{"influx", "jsonl", "nop", "prometheus"})
}

func TestNewPlanRecorder_NopCollapses(t *testing.T) {
	for _, cfgs := range [][]factory.ModuleConfig{nil, {{Type: "nop"}}, {{Type: "nop"}, {Type: "nop"}}} {
		s, err := metrics.NewPlanRecorder(cfgs)
		require.NoError(t, err)
		assert.IsType(t, metrics.NopSink{}, s)
	}
}

func TestNewPlanRecorder_UnknownTypeNamesEntry(t *testing.T) {
	_, err := metrics.NewPlanRecorder([]factory.ModuleConfig{{Type: "nop"}, {Type: "statsd"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics.sinks[1] (statsd)")
}

func TestNewPlanRecorder_JSONL(t *testing.T) {
	dir := t.TempDir()
	conf := func(name string) factory.ModuleConfig {
		return factory.ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": filepath.Join(dir, name), "max_size_mb": "5"}}
	}

	s, err := metrics.NewPlanRecorder([]factory.ModuleConfig{conf("a.jsonl")})
	require.NoError(t, err)
	_, isMulti := s.(*metrics.MultiSink)
	assert.False(t, isMulti, "a single sink is returned unwrapped")
	require.NoError(t, s.RecordPlan(metrics.PlanEvent{RunID: "r1"}))
	require.NoError(t, metrics.Close(s))

	s, err = metrics.NewPlanRecorder([]factory.ModuleConfig{conf("b.jsonl"), {Type: "nop"}, conf("c.jsonl")})
	require.NoError(t, err)
	m, ok := s.(*metrics.MultiSink)
	require.True(t, ok, "got %T", s)
	assert.Len(t, m.Sinks, 2)
	require.NoError(t, s.RecordPlan(metrics.PlanEvent{RunID: "r2"}))
	require.NoError(t, metrics.Close(s))

	for _, name := range []string{"b.jsonl", "c.jsonl"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"run_id":"r2"`)
	}
}
