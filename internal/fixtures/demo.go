package fixtures

import (
	"fmt"
	"time"

	"github.com/kilianp07/berthplan/core/model"
)

// DemoBaseDate anchors the demo arrivals.
var DemoBaseDate = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

// DemoBerths returns the four grain berths of the Kanto/Kansai demo terminal set.
func DemoBerths() []model.Berth {
	return []model.Berth{
		{ID: "CHIBA_B1", Name: "千葉第1バース", PortName: "千葉港", MaxCapacity: 80000, DailyHandlingCapacity: 3000, DailyCost: 500000},
		{ID: "CHIBA_B2", Name: "千葉第2バース", PortName: "千葉港", MaxCapacity: 60000, DailyHandlingCapacity: 2500, DailyCost: 400000},
		{ID: "YOKOHAMA_B1", Name: "横浜第1バース", PortName: "横浜港", MaxCapacity: 70000, DailyHandlingCapacity: 2800, DailyCost: 450000},
		{ID: "KOBE_B1", Name: "神戸第1バース", PortName: "神戸港", MaxCapacity: 75000, DailyHandlingCapacity: 3200, DailyCost: 480000},
	}
}

type demoVessel struct {
	name   string
	origin string
	offset int
	cargos []model.Cargo
}

var demoVessels = []demoVessel{
	{"GRAIN CARRIER 1", "ニューオーリンズ", 0, []model.Cargo{{Type: model.CargoCorn, Quantity: 45000}, {Type: model.CargoMilo, Quantity: 12000}}},
	{"PACIFIC BULK 2", "サンタフェ", 3, []model.Cargo{{Type: model.CargoCorn, Quantity: 40000}, {Type: model.CargoFeedBarley, Quantity: 15000}}},
	{"OCEAN TRADER 3", "ブエノスアイレス", 7, []model.Cargo{{Type: model.CargoCorn, Quantity: 50000}, {Type: model.CargoMilo, Quantity: 8000}}},
	{"BULK MASTER 4", "ニューオーリンズ", 10, []model.Cargo{{Type: model.CargoFeedBarley, Quantity: 35000}, {Type: model.CargoCorn, Quantity: 20000}}},
	{"GRAIN EXPRESS 5", "サンタフェ", 14, []model.Cargo{{Type: model.CargoCorn, Quantity: 48000}, {Type: model.CargoMilo, Quantity: 10000}}},
}

// DemoVessels returns five Panamax grain carriers arriving from base onwards.
func DemoVessels(base time.Time) []model.Vessel {
	out := make([]model.Vessel, 0, len(demoVessels))
	for i, d := range demoVessels {
		v, err := model.NewVessel(fmt.Sprintf("MV_%03d", i+1), d.name, 60000,
			model.AddDays(base, d.offset), d.origin, d.cargos)
		if err != nil {
			panic(fmt.Sprintf("demo vessel %d: %v", i+1, err))
		}
		out = append(out, v)
	}
	return out
}
