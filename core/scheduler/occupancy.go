package scheduler

import (
	"sort"
	"time"

	"github.com/kilianp07/berthplan/core/model"
)

// Tracker holds the intervals committed on each berth during one run.
// It is not safe for concurrent use; every run owns its own Tracker.
type Tracker struct {
	intervals map[string][]model.Interval
}

// NewTracker returns a Tracker with an empty timeline for each berth.
func NewTracker(berths []model.Berth) *Tracker {
	t := &Tracker{intervals: make(map[string][]model.Interval, len(berths))}
	for _, b := range berths {
		t.intervals[b.ID] = nil
	}
	return t
}

// FindAvailableStart returns the earliest day, not before desired nor today,
// at which durationDays consecutive days are free on the berth.
func (t *Tracker) FindAvailableStart(berthID string, desired, today time.Time, durationDays int) time.Time {
	candidate := model.Day(desired)
	if floor := model.Day(today); floor.After(candidate) {
		candidate = floor
	}
	occupied := t.Intervals(berthID)
	for moved := true; moved; {
		moved = false
		for _, iv := range occupied {
			if iv.Overlaps(candidate, model.AddDays(candidate, durationDays)) {
				candidate = iv.End
				moved = true
			}
		}
	}
	return candidate
}

// Commit claims iv on the berth. Intervals are not merged.
func (t *Tracker) Commit(berthID string, iv model.Interval) {
	t.intervals[berthID] = append(t.intervals[berthID], iv)
}

// Intervals returns the berth's committed intervals sorted by start.
func (t *Tracker) Intervals(berthID string) []model.Interval {
	out := append([]model.Interval(nil), t.intervals[berthID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
