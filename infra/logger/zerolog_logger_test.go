package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerFields(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "debug")
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "scheduler")
	l.Debugw("vessel assigned", map[string]any{"berth_id": "CHIBA_B1", "total_cost": 7500000})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scheduler", entry["component"])
	assert.Equal(t, "CHIBA_B1", entry["berth_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestZerologLoggerLevel(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "test")
	l.Debugf("debug %d", 1)
	l.Infof("info %s", "test")
	assert.Zero(t, buf.Len())
	l.Warnf("warn")
	l.Errorf("error")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestZerologLoggerDev(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LOG_LEVEL", "bogus")
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "test")
	l.Infof("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotNil(t, New("x"))
}

func TestConfigureDefaultsAndFile(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "berthplan.log")
	Configure(Options{Level: "warn", Format: "json", File: path, MaxSizeMB: 1})
	defer func() {
		require.NoError(t, Close())
		Configure(Options{})
	}()

	l := New("cfg")
	l.Infof("dropped")
	l.Warnf("kept %d", 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept 1")
}

func TestEnvOverridesConfiguredLevel(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "debug")
	Configure(Options{Level: "error"})
	defer Configure(Options{})

	var buf bytes.Buffer
	NewZerologLoggerTo(&buf, "x").Debugf("visible")
	assert.Contains(t, buf.String(), "visible")
}
