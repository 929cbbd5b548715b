// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	API      APIConfig      `toml:"api"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds the working-day window and week display settings.
type ScheduleConfig struct {
	DayStart      string `toml:"day_start"`      // e.g. "07:00"
	DayEnd        string `toml:"day_end"`        // e.g. "19:00"
	WeekDays      int    `toml:"week_days"`      // 5 or 7
	HideCancelled bool   `toml:"hide_cancelled"` // filter cancelled sessions from views
}

// APIConfig holds the practice-management backend settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

// StorageConfig holds local database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "escuro", "claro" or "auto"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart:      "07:00",
			DayEnd:        "19:00",
			WeekDays:      5,
			HideCancelled: false,
		},
		API: APIConfig{
			BaseURL: "http://localhost:8080",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "agenda.db"
	}
	return filepath.Join(home, ".local", "share", "agenda", "agenda.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "agenda", "config.toml")
}

// Load loads configuration from the default path, merging with defaults
// and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path. It starts with
// defaults, overlays file config if it exists, then applies env
// overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

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
	if v := os.Getenv("AGENDA_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("AGENDA_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("AGENDA_WEEK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.WeekDays = n
		}
	}
	if v := os.Getenv("AGENDA_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("AGENDA_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("AGENDA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("AGENDA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

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
	if err := validateTime(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Schedule.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Schedule.WeekDays != 5 && c.Schedule.WeekDays != 7 {
		return fmt.Errorf("week_days must be 5 or 7, got %d", c.Schedule.WeekDays)
	}
	if c.API.BaseURL == "" {
		return errors.New("api base_url must be set")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if !isDigits(t[0:2]) || !isDigits(t[3:5]) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
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
