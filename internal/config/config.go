// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "Asia/Kolkata"

// Config holds the application configuration.
type Config struct {
	Timezone     string             `toml:"timezone"` // IANA zone name
	Schedule     ScheduleConfig     `toml:"schedule"`
	Calendar     CalendarConfig     `toml:"calendar"`
	LLM          LLMConfig          `toml:"llm"`
	Storage      StorageConfig      `toml:"storage"`
	Integrations IntegrationsConfig `toml:"integrations"`
}

// ScheduleConfig holds the local schedule and to-do file settings.
type ScheduleConfig struct {
	Dir             string `toml:"dir"`              // per-date schedule files
	TodoFile        string `toml:"todo_file"`        // flat to-do list
	HistoryDir      string `toml:"history_dir"`      // chat history files
	DefaultDuration int    `toml:"default_duration"` // minutes, for batch placement
}

// CalendarConfig holds remote calendar settings.
type CalendarConfig struct {
	Provider       string `toml:"provider"`        // "google" or "memory"
	CalendarID     string `toml:"calendar_id"`     // "primary" addresses the default calendar
	CredentialsDir string `toml:"credentials_dir"` // credentials.json + token.json
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "openai" or "ollama"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // empty uses the provider's default endpoint
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// IntegrationsConfig holds credentials for the opaque service wrappers.
// These are usually supplied through the environment rather than the file.
type IntegrationsConfig struct {
	WeatherAPIKey string `toml:"weather_api_key"`
	MapsAPIKey    string `toml:"maps_api_key"`
	SMTPHost      string `toml:"smtp_host"`
	SMTPPort      int    `toml:"smtp_port"`
	EmailUser     string `toml:"email_user"`
	EmailPass     string `toml:"email_pass"`
}

// Default returns the default configuration.
func Default() *Config {
	dataDir := defaultDataDir()
	return &Config{
		Timezone: DefaultTimezone,
		Schedule: ScheduleConfig{
			Dir:             filepath.Join(dataDir, "schedules"),
			TodoFile:        filepath.Join(dataDir, "todo.txt"),
			HistoryDir:      filepath.Join(dataDir, "chat_history"),
			DefaultDuration: 60,
		},
		Calendar: CalendarConfig{
			Provider:       "google",
			CalendarID:     "primary",
			CredentialsDir: DefaultConfigDir(),
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o",
		},
		Storage: StorageConfig{
			DBPath: filepath.Join(dataDir, "mitra.db"),
		},
		Integrations: IntegrationsConfig{
			SMTPPort: 587,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "mitra")
}

// DefaultConfigDir returns the directory holding config.toml and calendar credentials.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mitra")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Schedule.Dir = expandPath(cfg.Schedule.Dir)
	cfg.Schedule.TodoFile = expandPath(cfg.Schedule.TodoFile)
	cfg.Schedule.HistoryDir = expandPath(cfg.Schedule.HistoryDir)
	cfg.Calendar.CredentialsDir = expandPath(cfg.Calendar.CredentialsDir)
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MITRA_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("MITRA_SCHEDULE_DIR"); v != "" {
		cfg.Schedule.Dir = v
	}
	if v := os.Getenv("MITRA_TODO_FILE"); v != "" {
		cfg.Schedule.TodoFile = v
	}
	if v := os.Getenv("MITRA_HISTORY_DIR"); v != "" {
		cfg.Schedule.HistoryDir = v
	}
	if v := os.Getenv("MITRA_CALENDAR_PROVIDER"); v != "" {
		cfg.Calendar.Provider = v
	}
	if v := os.Getenv("MITRA_CALENDAR_ID"); v != "" {
		cfg.Calendar.CalendarID = v
	}

	if v := os.Getenv("MITRA_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("MITRA_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("MITRA_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("MITRA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// Integration credentials use the service-conventional names.
	if v := os.Getenv("OWM_API_KEY"); v != "" {
		cfg.Integrations.WeatherAPIKey = v
	}
	if v := os.Getenv("GOOGLE_MAPS_API_KEY"); v != "" {
		cfg.Integrations.MapsAPIKey = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Integrations.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Integrations.SMTPPort = port
		}
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		cfg.Integrations.EmailUser = v
	}
	if v := os.Getenv("EMAIL_PASS"); v != "" {
		cfg.Integrations.EmailPass = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.Schedule.Dir == "" {
		return errors.New("schedule dir must be set")
	}
	if c.Schedule.TodoFile == "" {
		return errors.New("todo_file must be set")
	}
	if c.Schedule.DefaultDuration <= 0 {
		return errors.New("default_duration must be positive")
	}
	switch c.Calendar.Provider {
	case "google", "memory":
	default:
		return fmt.Errorf("unknown calendar provider: %s", c.Calendar.Provider)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Location returns the configured timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
