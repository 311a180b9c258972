package config

import (
	"fmt"

	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/internal/fixtures"
)

// FixturesConfig selects the dataset planned at startup.
type FixturesConfig struct {
	// Source is "demo", "file" or "random".
	Source string `json:"source"`
	Path   string `json:"path"`
	// DemoBase is the first demo arrival date (YYYY-MM-DD).
	DemoBase string                  `json:"demo_base"`
	Seed     int64                   `json:"seed"`
	Random   fixtures.GenerateConfig `json:"random"`
}

func (c *FixturesConfig) SetDefaults() {
	if c.Source == "" {
		c.Source = "demo"
	}
	if c.DemoBase == "" {
		c.DemoBase = fixtures.DemoBaseDate.Format(model.DateLayout)
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

func (c FixturesConfig) Validate() error {
	switch c.Source {
	case "demo", "random":
	case "file":
		if c.Path == "" {
			return fmt.Errorf("fixtures.path is required when source is file")
		}
	default:
		return fmt.Errorf("fixtures.source: unknown source %q", c.Source)
	}
	if _, err := model.ParseDate(c.DemoBase); err != nil {
		return fmt.Errorf("fixtures.demo_base: %w", err)
	}
	if c.Source == "random" {
		r := c.Random
		r.SetDefaults()
		return r.Validate()
	}
	return nil
}
