package app

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/berthplan/config"
	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/internal/fixtures"
)

// LoadDataset resolves the configured fixture source into planning inputs.
// Random fleets are planned against the demo berths.
func LoadDataset(cfg config.FixturesConfig) ([]model.Berth, []model.Vessel, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	base, err := model.ParseDate(cfg.DemoBase)
	if err != nil {
		return nil, nil, err
	}
	switch cfg.Source {
	case "file":
		berths, vessels, err := fixtures.Load(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load fixtures: %w", err)
		}
		return berths, vessels, nil
	case "random":
		gen := cfg.Random
		gen.Base = base
		vessels, err := fixtures.Generate(gen, rand.New(rand.NewSource(cfg.Seed)))
		if err != nil {
			return nil, nil, err
		}
		return fixtures.DemoBerths(), vessels, nil
	default:
		return fixtures.DemoBerths(), fixtures.DemoVessels(base), nil
	}
}
