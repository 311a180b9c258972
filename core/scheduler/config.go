package scheduler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/berthplan/core/model"
)

// DefaultWaitingCostPerDay is the demurrage charged per idle vessel day, in yen.
const DefaultWaitingCostPerDay int64 = 1_500_000

// SchedulerConfig defines the cost model loaded from configuration.
type SchedulerConfig struct {
	// WaitingCostPerDay is charged for every day between arrival and berth start.
	WaitingCostPerDay int64 `json:"waiting_cost_per_day" yaml:"waiting_cost_per_day"`
	// PlanDate pins "today" (YYYY-MM-DD). Empty means the wall clock.
	PlanDate string `json:"plan_date" yaml:"plan_date"`
}

// DefaultConfig returns the cost model used by the terminal demo.
func DefaultConfig() SchedulerConfig {
	return SchedulerConfig{WaitingCostPerDay: DefaultWaitingCostPerDay}
}

// SetDefaults fills unset fields.
func (c *SchedulerConfig) SetDefaults() {
	if c.WaitingCostPerDay == 0 {
		c.WaitingCostPerDay = DefaultWaitingCostPerDay
	}
}

// Validate checks the cost model.
func (c SchedulerConfig) Validate() error {
	if c.WaitingCostPerDay < 0 {
		return &model.ConfigurationError{Field: "scheduler.waiting_cost_per_day", Reason: "must not be negative"}
	}
	if c.PlanDate != "" {
		if _, err := c.planDate(); err != nil {
			return &model.ConfigurationError{Field: "scheduler.plan_date", Reason: err.Error()}
		}
	}
	return nil
}

func (c SchedulerConfig) planDate() (time.Time, error) {
	return time.Parse(model.DateLayout, c.PlanDate)
}

// LoadConfig loads SchedulerConfig from a JSON or YAML file.
func LoadConfig(path string) (SchedulerConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return SchedulerConfig{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var cfg SchedulerConfig
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	default:
		return SchedulerConfig{}, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err != nil {
		return SchedulerConfig{}, err
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}

// DecodeConfig reads from r to decode a SchedulerConfig.
func DecodeConfig(r io.Reader, format string) (SchedulerConfig, error) {
	var cfg SchedulerConfig
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported format: %s", format)
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}
