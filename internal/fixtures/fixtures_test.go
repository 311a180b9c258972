package fixtures

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/berthplan/core/model"
)

func TestDemoData(t *testing.T) {
	berths := DemoBerths()
	require.Len(t, berths, 4)
	for _, b := range berths {
		require.NoError(t, b.Validate())
	}

	vessels := DemoVessels(DemoBaseDate)
	require.Len(t, vessels, 5)
	assert.Equal(t, "MV_001", vessels[0].ID)
	assert.Equal(t, "MV_005", vessels[4].ID)
	assert.Equal(t, int64(57000), vessels[0].TotalQuantity())
	assert.Equal(t, int64(58000), vessels[4].TotalQuantity())
	assert.Equal(t, 14, model.DaysBetween(DemoBaseDate, vessels[4].ArrivalDate))
}

func TestLoadYAML(t *testing.T) {
	berths, vessels, err := Load(filepath.Join("testdata", "small.yaml"))
	require.NoError(t, err)
	require.Len(t, berths, 1)
	require.Len(t, vessels, 1)
	assert.Equal(t, "CHIBA_B1", berths[0].ID)
	assert.Equal(t, int64(34500), vessels[0].TotalQuantity())
	assert.Equal(t, model.CargoFeedBarley, vessels[0].Cargos()[1].Type)
	assert.Equal(t, "2025-07-03", vessels[0].ArrivalDate.Format(model.DateLayout))
}

func TestLoadJSON(t *testing.T) {
	berths, vessels, err := Load(filepath.Join("testdata", "small.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(3200), berths[0].DailyHandlingCapacity)
	assert.Equal(t, model.CargoMilo, vessels[0].Cargos()[0].Type)
}

func TestLoadRejectsInvalidVessel(t *testing.T) {
	_, _, err := Load(filepath.Join("testdata", "bad_cargo.yaml"))
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.toml")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	_, _, err := Load(p)
	assert.Error(t, err)
}

func TestFromModelRoundTrip(t *testing.T) {
	ds := FromModel(DemoBerths(), DemoVessels(DemoBaseDate))
	berths, vessels, err := ds.ToModel()
	require.NoError(t, err)
	assert.Equal(t, DemoBerths(), berths)
	require.Len(t, vessels, 5)
	assert.Equal(t, "2025-07-08", vessels[2].ArrivalDate.Format(model.DateLayout))
	assert.Equal(t, int64(58000), vessels[2].TotalQuantity())
}

func TestGenerateIsSeeded(t *testing.T) {
	cfg := GenerateConfig{Vessels: 12, SpreadDays: 5}
	a, err := Generate(cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := Generate(cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Len(t, a, 12)
	assert.Equal(t, a, b)
	assert.Equal(t, "RV_0001", a[0].ID)
	for _, v := range a {
		d := model.DaysBetween(DemoBaseDate, v.ArrivalDate)
		assert.GreaterOrEqual(t, d, 0)
		assert.LessOrEqual(t, d, 5)
		for _, c := range v.Cargos() {
			assert.GreaterOrEqual(t, c.Quantity, int64(5000))
			assert.LessOrEqual(t, c.Quantity, int64(50000))
		}
	}
}

func TestGenerateRejectsBadRange(t *testing.T) {
	_, err := Generate(GenerateConfig{MinCargo: 100, MaxCargo: 10}, rand.New(rand.NewSource(1)))
	var cerr *model.ConfigurationError
	assert.True(t, errors.As(err, &cerr))
}
