package model

import (
	"encoding/json"
	"time"
)

// Schedule binds one vessel to one berth. Costs are in yen.
type Schedule struct {
	Vessel       Vessel    `json:"vessel"`
	Berth        Berth     `json:"berth"`
	StartDate    time.Time `json:"start_date"`
	HandlingDays int       `json:"handling_days"`
	WaitingDays  int       `json:"waiting_days"`
	BerthCost    int64     `json:"berth_cost"`
	WaitingCost  int64     `json:"waiting_cost"`
	TotalCost    int64     `json:"total_cost"`
}

// EndDate is the exclusive end of the berth occupation.
func (s Schedule) EndDate() time.Time { return AddDays(s.StartDate, s.HandlingDays) }

// Interval returns the occupation claimed by the schedule.
func (s Schedule) Interval() Interval {
	return Interval{Start: s.StartDate, End: s.EndDate()}
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	type alias Schedule
	return json.Marshal(struct {
		alias
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}{
		alias:     alias(s),
		StartDate: s.StartDate.Format(DateLayout),
		EndDate:   s.EndDate().Format(DateLayout),
	})
}
