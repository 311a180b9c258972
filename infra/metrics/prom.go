package metrics

import (
	coremetrics "github.com/kilianp07/berthplan/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs        *prometheus.CounterVec
	assignments *prometheus.CounterVec
	unassigned  prometheus.Counter
	totalCost   prometheus.Gauge
	waiting     prometheus.Histogram
	duration    prometheus.Histogram
	inputs      *prometheus.GaugeVec
}

// NewPromSink registers planning metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plan_runs_total",
			Help: "Total number of planning runs",
		}, []string{"source"}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "berth_assignments_total",
			Help: "Vessels assigned per berth",
		}, []string{"berth_id"}),
		unassigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vessels_unassigned_total",
			Help: "Vessels no berth could accommodate",
		}),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_total_cost_yen",
			Help: "Total cost of the latest plan",
		}),
		waiting: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vessel_waiting_days",
			Help:    "Days between arrival and berth start",
			Buckets: []float64{0, 1, 2, 3, 5, 7, 10, 14, 21, 30},
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plan_duration_seconds",
			Help:    "Time spent computing a plan",
			Buckets: prometheus.DefBuckets,
		}),
		inputs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "plan_input_size",
			Help: "Number of berths and vessels fed to the latest run",
		}, []string{"dataset"}),
	}
	var err error
	if s.runs, err = registerCollector(reg, s.runs); err != nil {
		return nil, err
	}
	if s.assignments, err = registerCollector(reg, s.assignments); err != nil {
		return nil, err
	}
	if s.unassigned, err = registerCollector(reg, s.unassigned); err != nil {
		return nil, err
	}
	if s.totalCost, err = registerCollector(reg, s.totalCost); err != nil {
		return nil, err
	}
	if s.waiting, err = registerCollector(reg, s.waiting); err != nil {
		return nil, err
	}
	if s.duration, err = registerCollector(reg, s.duration); err != nil {
		return nil, err
	}
	if s.inputs, err = registerCollector(reg, s.inputs); err != nil {
		return nil, err
	}
	return s, nil
}

// registerCollector returns the already registered collector when the sink
// is built more than once per process.
func registerCollector[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlan updates counters for every schedule of the run.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	source := ev.Source
	if source == "" {
		source = "unknown"
	}
	s.runs.WithLabelValues(source).Inc()
	for _, sc := range ev.Schedules {
		s.assignments.WithLabelValues(sc.Berth.ID).Inc()
		s.waiting.Observe(float64(sc.WaitingDays))
	}
	s.unassigned.Add(float64(len(ev.Unassigned)))
	s.totalCost.Set(float64(ev.TotalCost()))
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordInputSize sets the dataset size gauges.
func (s *PromSink) RecordInputSize(berths, vessels int) error {
	s.inputs.WithLabelValues("berths").Set(float64(berths))
	s.inputs.WithLabelValues("vessels").Set(float64(vessels))
	return nil
}
