package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/berthplan/core/metrics"
	"github.com/kilianp07/berthplan/core/model"
)

func TestPromSinkRecordPlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	b1 := model.Berth{ID: "CHIBA_B1"}
	b2 := model.Berth{ID: "KOBE_B1"}
	ev := coremetrics.PlanEvent{
		Source:   "cli",
		Duration: 3 * time.Millisecond,
		Schedules: []model.Schedule{
			{Berth: b1, TotalCost: 7_500_000},
			{Berth: b1, WaitingDays: 4, TotalCost: 9_000_000},
			{Berth: b2, TotalCost: 1_000_000},
		},
		Unassigned: []model.Vessel{{ID: "BIG"}},
	}
	require.NoError(t, sink.RecordPlan(ev))
	require.NoError(t, sink.RecordInputSize(4, 6))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.assignments.WithLabelValues("CHIBA_B1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.assignments.WithLabelValues("KOBE_B1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.unassigned))
	assert.Equal(t, 17_500_000.0, testutil.ToFloat64(sink.totalCost))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.runs.WithLabelValues("cli")))
	assert.Equal(t, 6.0, testutil.ToFloat64(sink.inputs.WithLabelValues("vessels")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.waiting))
}

func TestPromSinkReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordPlan(coremetrics.PlanEvent{Source: "api"}))
	require.NoError(t, second.RecordPlan(coremetrics.PlanEvent{Source: "api"}))
	assert.Equal(t, 2.0, testutil.ToFloat64(second.runs.WithLabelValues("api")))
}
