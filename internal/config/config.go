package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Port        string        `yaml:"port" env:"PORT"`
	WebPort     string        `yaml:"web_port" env:"WEB_PORT"`
	APIURL      string        `yaml:"api_url" env:"API_URL"`
	LogLevel    string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat   string        `yaml:"log_format" env:"LOG_FORMAT"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT"`
	ValueMode   string        `yaml:"value_mode" env:"VALUE_MODE"`

	RedisAddr          string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	CacheTTL           time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
	CacheSweepSchedule string        `yaml:"cache_sweep_schedule" env:"CACHE_SWEEP_SCHEDULE"`

	SessionIdleTimeout   time.Duration `yaml:"session_idle_timeout" env:"SESSION_IDLE_TIMEOUT"`
	SessionSweepSchedule string        `yaml:"session_sweep_schedule" env:"SESSION_SWEEP_SCHEDULE"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Port:                 "8000",
		WebPort:              "3000",
		APIURL:               "http://localhost:8000",
		LogLevel:             "info",
		LogFormat:            "json",
		HTTPTimeout:          10 * time.Second,
		ValueMode:            "thousands",
		CacheTTL:             10 * time.Minute,
		CacheSweepSchedule:   "@every 1m",
		SessionIdleTimeout:   30 * time.Minute,
		SessionSweepSchedule: "@every 5m",
	}
}

// NewConfig loads configuration from an optional YAML file, then environment variables
func NewConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.ValueMode = strings.ToLower(strings.TrimSpace(cfg.ValueMode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and enumerations
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.WebPort == "" {
		return fmt.Errorf("WEB_PORT is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}
	switch c.ValueMode {
	case "thousands", "cents":
	default:
		return fmt.Errorf("VALUE_MODE must be thousands or cents, got %q", c.ValueMode)
	}
	return nil
}
