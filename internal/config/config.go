package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the console needs to talk to the backend and
// keep its local state. Values come from an optional YAML file, with
// environment variables taking precedence over both file and defaults.
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	StateDir       string        `yaml:"state_dir"`
	Language       string        `yaml:"language"`

	PageSize     int `yaml:"page_size"`
	DropdownSize int `yaml:"dropdown_size"`
	MaxPageSize  int `yaml:"max_page_size"`

	LowStockThreshold int `yaml:"low_stock_threshold"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBaseURL:        "http://localhost:8081/api/v1",
		RequestTimeout:    30 * time.Second,
		PollInterval:      10 * time.Second,
		StateDir:          defaultStateDir(),
		Language:          "vi",
		PageSize:          10,
		DropdownSize:      100,
		MaxPageSize:       1000,
		LowStockThreshold: 5,
	}
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist) and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = 5
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.APIBaseURL = getEnv("POS_API_URL", c.APIBaseURL)
	c.StateDir = getEnv("POS_STATE_DIR", c.StateDir)
	c.Language = getEnv("POS_LANGUAGE", c.Language)
	if v := os.Getenv("POS_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.PollInterval = d
		}
	}
	if v := os.Getenv("POS_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.RequestTimeout = d
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pos-admin"
	}
	return filepath.Join(home, ".pos-admin")
}
