package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Scheduler.ReminderInitialDelaySec)
	assert.Equal(t, 3600, cfg.Scheduler.ReminderIntervalSec)
	assert.Equal(t, 30, cfg.Scheduler.TriggerIntervalSec)
	assert.InDelta(t, 0.02, cfg.Scheduler.TriggerProbability, 0.0001)
	assert.Equal(t, "system", cfg.Display.Theme)
}

func TestSaveConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Scheduler.TriggerIntervalSec = 45
	cfg.Scheduler.TriggerProbability = 0.1
	cfg.Display.Theme = "dark"

	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DBPath, got.DBPath)
	assert.Equal(t, 45, got.Scheduler.TriggerIntervalSec)
	assert.InDelta(t, 0.1, got.Scheduler.TriggerProbability, 0.0001)
	assert.Equal(t, "dark", got.Display.Theme)
}
