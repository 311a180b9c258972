package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kilianp07/berthplan/core/model"
)

// GenerateConfig holds parameters for random fleet generation.
type GenerateConfig struct {
	Vessels     int       `json:"vessels" yaml:"vessels"`
	Base        time.Time `json:"-" yaml:"-"`
	SpreadDays  int       `json:"spread_days" yaml:"spread_days"`
	MinCargo    int64     `json:"min_cargo" yaml:"min_cargo"`
	MaxCargo    int64     `json:"max_cargo" yaml:"max_cargo"`
	MaxLines    int       `json:"max_lines" yaml:"max_lines"`
	VesselClass int64     `json:"vessel_capacity" yaml:"vessel_capacity"`
}

// SetDefaults fills zero fields with a Panamax-sized fleet over a month.
func (c *GenerateConfig) SetDefaults() {
	if c.Vessels == 0 {
		c.Vessels = 20
	}
	if c.Base.IsZero() {
		c.Base = DemoBaseDate
	}
	if c.SpreadDays == 0 {
		c.SpreadDays = 30
	}
	if c.MinCargo == 0 {
		c.MinCargo = 5000
	}
	if c.MaxCargo == 0 {
		c.MaxCargo = 50000
	}
	if c.MaxLines == 0 {
		c.MaxLines = 2
	}
	if c.VesselClass == 0 {
		c.VesselClass = 60000
	}
}

func (c GenerateConfig) Validate() error {
	switch {
	case c.Vessels < 0:
		return &model.ConfigurationError{Field: "fixtures.vessels", Reason: "must not be negative"}
	case c.SpreadDays < 0:
		return &model.ConfigurationError{Field: "fixtures.spread_days", Reason: "must not be negative"}
	case c.MinCargo <= 0 || c.MaxCargo < c.MinCargo:
		return &model.ConfigurationError{Field: "fixtures.min_cargo", Reason: "need 0 < min_cargo <= max_cargo"}
	case c.MaxLines <= 0:
		return &model.ConfigurationError{Field: "fixtures.max_lines", Reason: "must be positive"}
	}
	return nil
}

// Generate creates cfg.Vessels vessels with IDs RV_0001..RV_NNNN. The same
// rng seed always yields the same fleet.
func Generate(cfg GenerateConfig, rng *rand.Rand) ([]model.Vessel, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	types := []model.CargoType{model.CargoCorn, model.CargoMilo, model.CargoFeedBarley}
	origins := []string{"ニューオーリンズ", "サンタフェ", "ブエノスアイレス"}
	out := make([]model.Vessel, 0, cfg.Vessels)
	for i := 0; i < cfg.Vessels; i++ {
		lines := 1 + rng.Intn(cfg.MaxLines)
		cargos := make([]model.Cargo, lines)
		for j := range cargos {
			cargos[j] = model.Cargo{
				Type:     types[rng.Intn(len(types))],
				Quantity: cfg.MinCargo + rng.Int63n(cfg.MaxCargo-cfg.MinCargo+1),
			}
		}
		arrival := model.AddDays(cfg.Base, rng.Intn(cfg.SpreadDays+1))
		v, err := model.NewVessel(fmt.Sprintf("RV_%04d", i+1), fmt.Sprintf("RANDOM BULKER %d", i+1),
			cfg.VesselClass, arrival, origins[rng.Intn(len(origins))], cargos)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
