package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if c.UpcomingWindowDays != def.UpcomingWindowDays || c.ReminderToleranceMin != def.ReminderToleranceMin {
		t.Errorf("got %+v, want defaults", c)
	}
}

func TestLoadPartialConfigNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("reminder_tolerance_min: 10\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.ReminderToleranceMin != 10 {
		t.Errorf("ReminderToleranceMin = %d, want 10", c.ReminderToleranceMin)
	}
	if c.UpcomingWindowDays != 7 {
		t.Errorf("UpcomingWindowDays = %d, want default 7", c.UpcomingWindowDays)
	}
	if c.ReminderCron == "" {
		t.Error("ReminderCron not defaulted")
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c := Default()
	c.Theme = "dark"
	c.UpcomingWindowDays = 14

	if err := Save(path, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Theme != "dark" || got.UpcomingWindowDays != 14 {
		t.Errorf("round trip lost values: %+v", got)
	}
}
