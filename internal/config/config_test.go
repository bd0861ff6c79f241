package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Timezone != "Asia/Kolkata" {
		t.Errorf("expected timezone Asia/Kolkata, got %s", cfg.Timezone)
	}
	if cfg.Schedule.DefaultDuration != 60 {
		t.Errorf("expected default_duration 60, got %d", cfg.Schedule.DefaultDuration)
	}
	if cfg.Calendar.Provider != "google" {
		t.Errorf("expected provider google, got %s", cfg.Calendar.Provider)
	}
	if cfg.Calendar.CalendarID != "primary" {
		t.Errorf("expected calendar_id primary, got %s", cfg.Calendar.CalendarID)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("expected llm provider openai, got %s", cfg.LLM.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Timezone != "Asia/Kolkata" {
		t.Errorf("expected default timezone, got %s", cfg.Timezone)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
timezone = "Europe/Madrid"

[schedule]
dir = "/tmp/schedules"
todo_file = "/tmp/todo.txt"
default_duration = 45

[calendar]
provider = "memory"

[llm]
provider = "ollama"
model = "llama3"
base_url = "http://localhost:11435"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Timezone != "Europe/Madrid" {
		t.Errorf("expected timezone Europe/Madrid, got %s", cfg.Timezone)
	}
	if cfg.Schedule.Dir != "/tmp/schedules" {
		t.Errorf("expected schedule dir /tmp/schedules, got %s", cfg.Schedule.Dir)
	}
	if cfg.Schedule.DefaultDuration != 45 {
		t.Errorf("expected default_duration 45, got %d", cfg.Schedule.DefaultDuration)
	}
	if cfg.Calendar.Provider != "memory" {
		t.Errorf("expected calendar provider memory, got %s", cfg.Calendar.Provider)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected llm provider ollama, got %s", cfg.LLM.Provider)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("MITRA_TIMEZONE", "UTC")
	t.Setenv("MITRA_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("OWM_API_KEY", "weather-key")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Timezone != "UTC" {
		t.Errorf("expected env timezone UTC, got %s", cfg.Timezone)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("expected env model gpt-4o-mini, got %s", cfg.LLM.Model)
	}
	if cfg.Integrations.WeatherAPIKey != "weather-key" {
		t.Errorf("expected env weather key, got %s", cfg.Integrations.WeatherAPIKey)
	}
}

func TestValidate_BadTimezone(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestValidate_BadCalendarProvider(t *testing.T) {
	cfg := Default()
	cfg.Calendar.Provider = "exchange"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown calendar provider")
	}
}

func TestValidate_NonPositiveDuration(t *testing.T) {
	cfg := Default()
	cfg.Schedule.DefaultDuration = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive default duration")
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc := cfg.Location()
	if loc.String() != "Asia/Kolkata" {
		t.Errorf("Location = %s, want Asia/Kolkata", loc)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Timezone = "UTC"
	cfg.Schedule.DefaultDuration = 30
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Timezone != "UTC" || loaded.Schedule.DefaultDuration != 30 {
		t.Errorf("reloaded config = %+v", loaded)
	}
}
