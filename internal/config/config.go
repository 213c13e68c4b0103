package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// StoragePath is the storage file location. A .json extension selects
	// the JSON backend, anything else SQLite.
	StoragePath string `yaml:"storage_path"`

	// UpcomingWindowDays is how far ahead the upcoming-events view looks.
	UpcomingWindowDays int `yaml:"upcoming_window_days"`

	// ReminderToleranceMin is the half-width, in minutes, of the window
	// around an event's time during which it counts as due.
	ReminderToleranceMin int `yaml:"reminder_tolerance_min"`

	// ReminderCron is the cron-style schedule on which `deskcal watch`
	// polls for due reminders.
	ReminderCron string `yaml:"reminder_cron"`

	// Theme is an opaque UI preference passed through to storage for the
	// widget layer; the engine never interprets it.
	Theme string `yaml:"theme"`

	// LogLevel controls diagnostic verbosity (DEBUG, INFO, WARN, ERROR).
	LogLevel string `yaml:"log_level"`
}

// Default returns an in-memory default configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		StoragePath:          filepath.Join(home, ".config", "deskcal", "deskcal.db"),
		UpcomingWindowDays:   7,
		ReminderToleranceMin: 5,
		ReminderCron:         "* * * * *",
		Theme:                "light",
		LogLevel:             "INFO",
	}
}

// Normalize fills in missing/zero values so partially-filled config files
// still behave correctly.
func (c *Config) Normalize() {
	def := Default()
	if c.StoragePath == "" {
		c.StoragePath = def.StoragePath
	}
	if c.UpcomingWindowDays <= 0 {
		c.UpcomingWindowDays = def.UpcomingWindowDays
	}
	if c.ReminderToleranceMin <= 0 {
		c.ReminderToleranceMin = def.ReminderToleranceMin
	}
	if c.ReminderCron == "" {
		c.ReminderCron = def.ReminderCron
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Load reads the config file at path. A missing file yields defaults; a
// present but malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	c.Normalize()
	return c, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
