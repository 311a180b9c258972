// Package report derives the dashboard KPIs from a plan.
package report

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/core/scheduler"
)

// BerthUsage is the occupation of a single berth over the plan horizon.
type BerthUsage struct {
	BerthID      string  `json:"berth_id"`
	BerthName    string  `json:"berth_name"`
	Vessels      int     `json:"vessels"`
	OccupiedDays int     `json:"occupied_days"`
	Utilisation  float64 `json:"utilisation"`
	Cost         int64   `json:"cost"`
}

// Summary aggregates a plan. Money stays integral; only the averages and
// ratios are floating point.
type Summary struct {
	RunID          string       `json:"run_id"`
	Assigned       int          `json:"assigned"`
	Unassigned     int          `json:"unassigned"`
	BerthCost      int64        `json:"berth_cost"`
	WaitingCost    int64        `json:"waiting_cost"`
	TotalCost      int64        `json:"total_cost"`
	AvgWaitingDays float64      `json:"avg_waiting_days"`
	MaxWaitingDays int          `json:"max_waiting_days"`
	HorizonStart   time.Time    `json:"horizon_start"`
	HorizonEnd     time.Time    `json:"horizon_end"`
	HorizonDays    int          `json:"horizon_days"`
	Berths         []BerthUsage `json:"berths"`
	UnassignedIDs  []string     `json:"unassigned_ids"`
}

// Summarize computes the KPIs of plan. Berths with no schedule still get a
// zero usage row, in the order given.
func Summarize(plan scheduler.Plan, berths []model.Berth) Summary {
	s := Summary{
		RunID:      plan.RunID,
		Assigned:   len(plan.Schedules),
		Unassigned: len(plan.Unassigned),
	}
	for _, v := range plan.Unassigned {
		s.UnassignedIDs = append(s.UnassignedIDs, v.ID)
	}

	usage := make(map[string]*BerthUsage, len(berths))
	order := make([]string, 0, len(berths))
	for _, b := range berths {
		if _, ok := usage[b.ID]; ok {
			continue
		}
		usage[b.ID] = &BerthUsage{BerthID: b.ID, BerthName: b.Name}
		order = append(order, b.ID)
	}

	waits := make([]float64, 0, len(plan.Schedules))
	for i, sc := range plan.Schedules {
		s.BerthCost += sc.BerthCost
		s.WaitingCost += sc.WaitingCost
		s.TotalCost += sc.TotalCost
		waits = append(waits, float64(sc.WaitingDays))

		if i == 0 || sc.StartDate.Before(s.HorizonStart) {
			s.HorizonStart = sc.StartDate
		}
		if end := sc.EndDate(); end.After(s.HorizonEnd) {
			s.HorizonEnd = end
		}

		u, ok := usage[sc.Berth.ID]
		if !ok {
			u = &BerthUsage{BerthID: sc.Berth.ID, BerthName: sc.Berth.Name}
			usage[sc.Berth.ID] = u
			order = append(order, sc.Berth.ID)
		}
		u.Vessels++
		u.OccupiedDays += sc.HandlingDays
		u.Cost += sc.BerthCost
	}

	if len(waits) > 0 {
		s.AvgWaitingDays = stat.Mean(waits, nil)
		s.MaxWaitingDays = int(floats.Max(waits))
		s.HorizonDays = model.DaysBetween(s.HorizonStart, s.HorizonEnd)
	}

	for _, id := range order {
		u := usage[id]
		if s.HorizonDays > 0 {
			u.Utilisation = float64(u.OccupiedDays) / float64(s.HorizonDays)
		}
		s.Berths = append(s.Berths, *u)
	}
	return s
}

// ByBerth groups schedules per berth, each group ordered by start date.
func ByBerth(schedules []model.Schedule) map[string][]model.Schedule {
	out := make(map[string][]model.Schedule)
	for _, sc := range schedules {
		out[sc.Berth.ID] = append(out[sc.Berth.ID], sc)
	}
	for _, list := range out {
		sort.SliceStable(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
	}
	return out
}
