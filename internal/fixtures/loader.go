// Package fixtures supplies berth and vessel datasets: the built-in demo
// set, fixture files, and seeded random fleets.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/berthplan/core/model"
)

type BerthDef struct {
	ID                    string `yaml:"id" json:"id"`
	Name                  string `yaml:"name" json:"name"`
	PortName              string `yaml:"port_name" json:"port_name"`
	MaxCapacity           int64  `yaml:"max_capacity" json:"max_capacity"`
	DailyHandlingCapacity int64  `yaml:"daily_handling_capacity" json:"daily_handling_capacity"`
	DailyCost             int64  `yaml:"daily_cost" json:"daily_cost"`
}

func (b BerthDef) ToModel() (model.Berth, error) {
	return model.NewBerth(b.ID, b.Name, b.PortName, b.MaxCapacity, b.DailyHandlingCapacity, b.DailyCost)
}

type CargoDef struct {
	Type     string `yaml:"type" json:"type"`
	Quantity int64  `yaml:"quantity" json:"quantity"`
}

type VesselDef struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Capacity    int64      `yaml:"capacity" json:"capacity"`
	ArrivalDate string     `yaml:"arrival_date" json:"arrival_date"`
	OriginPort  string     `yaml:"origin_port" json:"origin_port"`
	Cargos      []CargoDef `yaml:"cargos" json:"cargos"`
}

func (v VesselDef) ToModel() (model.Vessel, error) {
	arrival, err := model.ParseDate(v.ArrivalDate)
	if err != nil {
		return model.Vessel{}, fmt.Errorf("vessel %s: %w", v.ID, err)
	}
	cargos := make([]model.Cargo, len(v.Cargos))
	for i, c := range v.Cargos {
		t, err := model.ParseCargoType(c.Type)
		if err != nil {
			return model.Vessel{}, fmt.Errorf("vessel %s: %w", v.ID, err)
		}
		cargos[i] = model.Cargo{Type: t, Quantity: c.Quantity}
	}
	return model.NewVessel(v.ID, v.Name, v.Capacity, arrival, v.OriginPort, cargos)
}

// Dataset is the on-disk layout of a fixture file.
type Dataset struct {
	Berths  []BerthDef  `yaml:"berths" json:"berths"`
	Vessels []VesselDef `yaml:"vessels" json:"vessels"`
}

// ToModel converts every definition, failing on the first invalid entry.
func (d Dataset) ToModel() ([]model.Berth, []model.Vessel, error) {
	berths := make([]model.Berth, 0, len(d.Berths))
	for _, b := range d.Berths {
		mb, err := b.ToModel()
		if err != nil {
			return nil, nil, err
		}
		berths = append(berths, mb)
	}
	vessels := make([]model.Vessel, 0, len(d.Vessels))
	for _, v := range d.Vessels {
		mv, err := v.ToModel()
		if err != nil {
			return nil, nil, err
		}
		vessels = append(vessels, mv)
	}
	return berths, vessels, nil
}

// FromModel builds the file representation of a dataset.
func FromModel(berths []model.Berth, vessels []model.Vessel) Dataset {
	var d Dataset
	for _, b := range berths {
		d.Berths = append(d.Berths, BerthDef(b))
	}
	for _, v := range vessels {
		def := VesselDef{
			ID:          v.ID,
			Name:        v.Name,
			Capacity:    v.Capacity,
			ArrivalDate: v.ArrivalDate.Format(model.DateLayout),
			OriginPort:  v.OriginPort,
		}
		for _, c := range v.Cargos() {
			def.Cargos = append(def.Cargos, CargoDef{Type: c.Type.String(), Quantity: c.Quantity})
		}
		d.Vessels = append(d.Vessels, def)
	}
	return d
}

// Load reads a YAML or JSON fixture file.
func Load(path string) ([]model.Berth, []model.Vessel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var ds Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ds)
	case ".json":
		err = json.Unmarshal(data, &ds)
	default:
		return nil, nil, fmt.Errorf("unsupported fixture format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds.ToModel()
}
