package metrics

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/natefinch/lumberjack.v2"

	coremetrics "github.com/kilianp07/berthplan/core/metrics"
	"github.com/kilianp07/berthplan/core/model"
)

// RunRecord is one line of the planning run log.
type RunRecord struct {
	RunID       string           `json:"run_id"`
	Source      string           `json:"source"`
	Timestamp   time.Time        `json:"timestamp"`
	DurationMS  float64          `json:"duration_ms"`
	Assigned    int              `json:"assigned"`
	Unassigned  []string         `json:"unassigned"`
	TotalCost   int64            `json:"total_cost"`
	Assignments []AssignmentLine `json:"assignments"`
}

type AssignmentLine struct {
	VesselID    string `json:"vessel_id"`
	BerthID     string `json:"berth_id"`
	StartDate   string `json:"start_date"`
	WaitingDays int    `json:"waiting_days"`
	TotalCost   int64  `json:"total_cost"`
}

// JSONLSink appends a RunRecord per plan to a size-rotated JSONL file.
type JSONLSink struct {
	mu  sync.Mutex
	out *lumberjack.Logger
}

// NewJSONLSink creates the sink with rotation limits in megabytes and days.
func NewJSONLSink(path string, maxSizeMB, maxBackups, maxAgeDays int) (*JSONLSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &JSONLSink{out: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}}, nil
}

func (s *JSONLSink) RecordPlan(ev coremetrics.PlanEvent) error {
	rec := RunRecord{
		RunID:      ev.RunID,
		Source:     ev.Source,
		Timestamp:  ev.Time,
		DurationMS: float64(ev.Duration.Microseconds()) / 1000,
		Assigned:   len(ev.Schedules),
		Unassigned: []string{},
		TotalCost:  ev.TotalCost(),
	}
	for _, v := range ev.Unassigned {
		rec.Unassigned = append(rec.Unassigned, v.ID)
	}
	for _, sc := range ev.Schedules {
		rec.Assignments = append(rec.Assignments, AssignmentLine{
			VesselID:    sc.Vessel.ID,
			BerthID:     sc.Berth.ID,
			StartDate:   sc.StartDate.Format(model.DateLayout),
			WaitingDays: sc.WaitingDays,
			TotalCost:   sc.TotalCost,
		})
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.out.Write(append(line, '\n'))
	return err
}

// Close closes the current log file.
func (s *JSONLSink) Close() error { return s.out.Close() }
