package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVesselTotalQuantity(t *testing.T) {
	arrival := time.Date(2025, 7, 1, 15, 30, 0, 0, time.UTC)
	v, err := NewVessel("MV_001", "GRAIN CARRIER 1", 60000, arrival, "New Orleans", []Cargo{
		{Type: CargoCorn, Quantity: 45000},
		{Type: CargoMilo, Quantity: 12000},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(57000), v.TotalQuantity())
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), v.ArrivalDate)

	var sum int64
	for _, c := range v.Cargos() {
		sum += c.Quantity
	}
	assert.Equal(t, sum, v.TotalQuantity())
}

func TestVesselCargosAreCopied(t *testing.T) {
	in := []Cargo{{Type: CargoCorn, Quantity: 100}}
	v, err := NewVessel("v", "v", 0, time.Now(), "", in)
	require.NoError(t, err)
	in[0].Quantity = 5
	out := v.Cargos()
	out[0].Quantity = 7
	assert.Equal(t, int64(100), v.Cargos()[0].Quantity)
	assert.Equal(t, int64(100), v.TotalQuantity())
}

func TestNewVesselValidation(t *testing.T) {
	now := time.Now()
	cases := map[string][]Cargo{
		"empty":    nil,
		"zero":     {{Type: CargoCorn, Quantity: 0}},
		"negative": {{Type: CargoMilo, Quantity: 10}, {Type: CargoCorn, Quantity: -1}},
	}
	for name, cargos := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewVessel("v1", "v1", 0, now, "", cargos)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
		})
	}
	_, err := NewVessel("", "x", 0, now, "", []Cargo{{Quantity: 1}})
	assert.Error(t, err)
}

func TestZeroVesselFailsValidate(t *testing.T) {
	var verr *ValidationError
	assert.True(t, errors.As(Vessel{ID: "x"}.Validate(), &verr))
}

func TestNewBerthConfiguration(t *testing.T) {
	_, err := NewBerth("B1", "b", "p", 80000, 0, 500000)
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, cerr.Field, "daily_handling_capacity")

	_, err = NewBerth("B1", "b", "p", 80000, -3, 500000)
	assert.True(t, errors.As(err, &cerr))

	b, err := NewBerth("B1", "b", "p", 80000, 3000, 500000)
	require.NoError(t, err)
	assert.Equal(t, 15, b.HandlingDays(45000))
	assert.Equal(t, 16, b.HandlingDays(45001))
	assert.Equal(t, 1, b.HandlingDays(1))
}

func TestCargoTypeText(t *testing.T) {
	for _, ct := range []CargoType{CargoCorn, CargoMilo, CargoFeedBarley} {
		b, err := ct.MarshalText()
		require.NoError(t, err)
		var back CargoType
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, ct, back)
	}
	_, err := ParseCargoType("wheat")
	assert.Error(t, err)
	assert.Equal(t, "飼料麦", CargoFeedBarley.Label())
}

func TestVesselJSONRecomputesTotal(t *testing.T) {
	data := `{"id":"MV_9","name":"X","capacity":60000,"arrival_date":"2025-07-03","origin_port":"Santa Fe",
	"cargos":[{"type":"corn","quantity":40000},{"type":"feed_barley","quantity":15000}],"total_quantity":1}`
	var v Vessel
	require.NoError(t, json.Unmarshal([]byte(data), &v))
	assert.Equal(t, int64(55000), v.TotalQuantity())
	assert.Equal(t, time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), v.ArrivalDate)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"total_quantity":55000`)
	assert.Contains(t, string(out), `"arrival_date":"2025-07-03"`)
}

func TestScheduleEndDate(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	s := Schedule{StartDate: start, HandlingDays: 15}
	assert.Equal(t, time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC), s.EndDate())
	assert.Equal(t, Interval{Start: start, End: s.EndDate()}, s.Interval())

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"end_date":"2025-07-16"`)
}

func TestIntervalOverlaps(t *testing.T) {
	d := func(n int) time.Time { return time.Date(2025, 7, 1+n, 0, 0, 0, 0, time.UTC) }
	iv := Interval{Start: d(0), End: d(15)}
	assert.True(t, iv.Overlaps(d(0), d(5)))
	assert.True(t, iv.Overlaps(d(14), d(20)))
	assert.False(t, iv.Overlaps(d(15), d(20)))
	assert.False(t, iv.Overlaps(d(-5), d(0)))
	assert.Equal(t, 15, DaysBetween(d(0), d(15)))
}
