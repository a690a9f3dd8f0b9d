package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"tariff-sync/internal/gaps"
	"tariff-sync/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every field has a
// working default; an absent config file is not an error for cmd/sync.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Dataset DatasetConfig `yaml:"dataset"`
	Sync    SyncConfig    `yaml:"sync"`
	Server  ServerConfig  `yaml:"server"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type DatasetConfig struct {
	Path string `yaml:"path"`
}

type SyncConfig struct {
	HistoricalFloor   string `yaml:"historical_floor"` // YYYY-MM-DD
	FloorPolicy       string `yaml:"floor_policy"`     // "fixed" or "year-start"
	IncludeToday      bool   `yaml:"include_today"`
	CloseInternalGaps bool   `yaml:"close_internal_gaps"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://mijn.easyenergy.com/nl/api/tariff/getapxtariffs",
			TimeoutSeconds: 30,
		},
		Dataset: DatasetConfig{
			Path: "data/EasyEnergyPrice.csv",
		},
		Sync: SyncConfig{
			HistoricalFloor: "2012-01-01",
			FloorPolicy:     string(gaps.FloorFixed),
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Load reads a YAML config file, fills in defaults, and validates.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyDefaults restores defaults for fields YAML set to their zero value.
func (c *Config) applyDefaults() {
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = d.API.TimeoutSeconds
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = d.Dataset.Path
	}
	if c.Sync.HistoricalFloor == "" {
		c.Sync.HistoricalFloor = d.Sync.HistoricalFloor
	}
	if c.Sync.FloorPolicy == "" {
		c.Sync.FloorPolicy = d.Sync.FloorPolicy
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.API.TimeoutSeconds < 1 {
		return errors.New("api.timeout_seconds must be >= 1")
	}
	if c.Dataset.Path == "" {
		return errors.New("dataset.path is required")
	}
	if _, err := time.Parse(model.DateLayout, c.Sync.HistoricalFloor); err != nil {
		return fmt.Errorf("sync.historical_floor must be YYYY-MM-DD: %w", err)
	}
	switch gaps.FloorPolicy(c.Sync.FloorPolicy) {
	case gaps.FloorFixed, gaps.FloorYearStart:
	default:
		return fmt.Errorf("sync.floor_policy must be %q or %q, got %q",
			gaps.FloorFixed, gaps.FloorYearStart, c.Sync.FloorPolicy)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

// Floor returns the parsed historical floor. Call Validate first.
func (c *Config) Floor() time.Time {
	t, _ := time.Parse(model.DateLayout, c.Sync.HistoricalFloor)
	return t
}

// Timeout returns the API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Analyzer builds the gap analyzer described by the config.
func (c *Config) Analyzer() gaps.Analyzer {
	return gaps.Analyzer{
		Floor:        c.Floor(),
		Policy:       gaps.FloorPolicy(c.Sync.FloorPolicy),
		IncludeToday: c.Sync.IncludeToday,
	}
}
