package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// SchedulerConfig holds timing knobs for the background loops.
type SchedulerConfig struct {
	// ReminderInitialDelaySec is how long after sign-in the first
	// reminder scan runs.
	ReminderInitialDelaySec int `mapstructure:"reminder_initial_delay_sec" yaml:"reminder_initial_delay_sec"`

	// ReminderIntervalSec is the repeating reminder scan period.
	ReminderIntervalSec int `mapstructure:"reminder_interval_sec" yaml:"reminder_interval_sec"`

	// TriggerIntervalSec is the popup trigger tick period.
	TriggerIntervalSec int `mapstructure:"trigger_interval_sec" yaml:"trigger_interval_sec"`

	// TriggerProbability is the per-tick chance of opening a popup.
	TriggerProbability float64 `mapstructure:"trigger_probability" yaml:"trigger_probability"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// Theme is "dark", "light", or "system".
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the SQLite database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	Scheduler SchedulerConfig `mapstructure:"scheduler" yaml:"scheduler"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
}

// ReminderInitialDelay returns the initial scan delay as a duration.
func (c AppConfig) ReminderInitialDelay() time.Duration {
	return time.Duration(c.Scheduler.ReminderInitialDelaySec) * time.Second
}

// ReminderInterval returns the repeating scan period as a duration.
func (c AppConfig) ReminderInterval() time.Duration {
	return time.Duration(c.Scheduler.ReminderIntervalSec) * time.Second
}

// TriggerInterval returns the popup tick period as a duration.
func (c AppConfig) TriggerInterval() time.Duration {
	return time.Duration(c.Scheduler.TriggerIntervalSec) * time.Second
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/omnitask/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "omnitask", "config.yaml")
}

// defaultDBPath returns the default SQLite database location.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "omnitask.db")
	}
	return filepath.Join(home, ".local", "share", "omnitask", "omnitask.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath: defaultDBPath(),
		Scheduler: SchedulerConfig{
			ReminderInitialDelaySec: 3,
			ReminderIntervalSec:     3600,
			TriggerIntervalSec:      30,
			TriggerProbability:      0.02,
		},
		Display: DisplayConfig{
			Theme: "system",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing or unparseable file yields the default configuration; startup
// never fails on bad config.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("scheduler.reminder_initial_delay_sec", 3)
	v.SetDefault("scheduler.reminder_interval_sec", 3600)
	v.SetDefault("scheduler.trigger_interval_sec", 30)
	v.SetDefault("scheduler.trigger_probability", 0.02)
	v.SetDefault("display.theme", "system")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		// Corrupt config falls back to defaults rather than blocking startup.
		return defaultAppConfig(), nil
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return defaultAppConfig(), nil
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("scheduler.reminder_initial_delay_sec", cfg.Scheduler.ReminderInitialDelaySec)
	v.Set("scheduler.reminder_interval_sec", cfg.Scheduler.ReminderIntervalSec)
	v.Set("scheduler.trigger_interval_sec", cfg.Scheduler.TriggerIntervalSec)
	v.Set("scheduler.trigger_probability", cfg.Scheduler.TriggerProbability)
	v.Set("display.theme", cfg.Display.Theme)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
