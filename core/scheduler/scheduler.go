package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/berthplan/core/logger"
	"github.com/kilianp07/berthplan/core/model"
)

// Scheduler computes berth plans. It keeps no state between runs, so a
// single Scheduler may serve concurrent callers.
type Scheduler struct {
	Config SchedulerConfig

	now func() time.Time
	log logger.Logger
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the wall clock used for the "today" floor.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for per-vessel decisions.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// New validates cfg and returns a Scheduler.
func New(cfg SchedulerConfig, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{Config: cfg, now: time.Now, log: logger.NopLogger{}}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Plan is the outcome of one optimisation run.
type Plan struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Today       time.Time        `json:"today"`
	Schedules   []model.Schedule `json:"schedules"`
	Unassigned  []model.Vessel   `json:"unassigned"`
}

// Today returns the planning floor: the configured plan date or the current UTC day.
func (s *Scheduler) Today() time.Time {
	if s.Config.PlanDate != "" {
		if d, err := s.Config.planDate(); err == nil {
			return d
		}
	}
	return model.Day(s.now().UTC())
}

// Optimize assigns vessels to berths and returns the committed schedules in
// arrival order. Vessels no berth can hold are left out of the result.
func (s *Scheduler) Optimize(berths []model.Berth, vessels []model.Vessel) ([]model.Schedule, error) {
	p, err := s.Plan(berths, vessels)
	if err != nil {
		return nil, err
	}
	return p.Schedules, nil
}

// Plan runs the optimisation and also reports the vessels left unassigned.
func (s *Scheduler) Plan(berths []model.Berth, vessels []model.Vessel) (Plan, error) {
	for _, b := range berths {
		if err := b.Validate(); err != nil {
			return Plan{}, err
		}
	}
	for _, v := range vessels {
		if err := v.Validate(); err != nil {
			return Plan{}, err
		}
	}

	today := s.Today()
	tracker := NewTracker(berths)
	ordered := append([]model.Vessel(nil), vessels...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ArrivalDate.Before(ordered[j].ArrivalDate)
	})

	plan := Plan{
		RunID:       uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Today:       today,
		Schedules:   make([]model.Schedule, 0, len(ordered)),
	}
	for _, v := range ordered {
		best, ok := s.bestBerth(tracker, berths, v, today)
		if !ok {
			s.log.Warnf("vessel %s (%d t) fits no berth, left unassigned", v.ID, v.TotalQuantity())
			plan.Unassigned = append(plan.Unassigned, v)
			continue
		}
		tracker.Commit(best.Berth.ID, best.Interval())
		plan.Schedules = append(plan.Schedules, best)
		s.log.Debugw("vessel assigned", map[string]any{
			"vessel_id":     v.ID,
			"berth_id":      best.Berth.ID,
			"start_date":    best.StartDate.Format(model.DateLayout),
			"handling_days": best.HandlingDays,
			"waiting_days":  best.WaitingDays,
			"total_cost":    best.TotalCost,
		})
	}
	s.log.Infof("%s", plan)
	return plan, nil
}

// bestBerth evaluates every eligible berth in order and keeps the first
// strictly cheapest candidate.
func (s *Scheduler) bestBerth(tr *Tracker, berths []model.Berth, v model.Vessel, today time.Time) (model.Schedule, bool) {
	var (
		best  model.Schedule
		found bool
	)
	for _, b := range berths {
		if v.TotalQuantity() > b.MaxCapacity {
			continue
		}
		c := s.Candidate(tr, b, v, today)
		if !found || c.TotalCost < best.TotalCost {
			best, found = c, true
		}
	}
	return best, found
}

// Candidate prices the earliest slot for v on b given the tracker state.
func (s *Scheduler) Candidate(tr *Tracker, b model.Berth, v model.Vessel, today time.Time) model.Schedule {
	days := b.HandlingDays(v.TotalQuantity())
	start := tr.FindAvailableStart(b.ID, v.ArrivalDate, today, days)
	waiting := model.DaysBetween(v.ArrivalDate, start)
	if waiting < 0 {
		waiting = 0
	}
	berthCost := b.DailyCost * int64(days)
	waitingCost := int64(waiting) * s.Config.WaitingCostPerDay
	return model.Schedule{
		Vessel:       v,
		Berth:        b,
		StartDate:    start,
		HandlingDays: days,
		WaitingDays:  waiting,
		BerthCost:    berthCost,
		WaitingCost:  waitingCost,
		TotalCost:    berthCost + waitingCost,
	}
}

// String summarizes the plan for logs.
func (p Plan) String() string {
	return fmt.Sprintf("plan %s: %d scheduled, %d unassigned", p.RunID, len(p.Schedules), len(p.Unassigned))
}
