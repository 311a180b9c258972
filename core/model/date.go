package model

import "time"

// DateLayout is the calendar-day format used in fixtures and exports.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }

// DaysBetween returns the whole days from a to b, negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// ParseDate parses a DateLayout string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: err.Error()}
	}
	return t, nil
}

// Interval is a half-open [Start, End) range of days claimed on a berth.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether [start, end) intersects the interval.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}
