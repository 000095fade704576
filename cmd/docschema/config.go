package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the serve configuration file.
type Config struct {
	Name      string          `yaml:"name"`
	Version   string          `yaml:"version"`
	Sources   []string        `yaml:"sources"`
	WebSocket string          `yaml:"websocket"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Timeout   time.Duration   `yaml:"timeout"`
	LogLevel  string          `yaml:"log_level"`
}

// RateLimitConfig enables rate limiting when Rate is positive.
type RateLimitConfig struct {
	Rate  int `yaml:"rate"`
	Burst int `yaml:"burst"`
}

func defaultConfig() Config {
	return Config{
		Name:     "docschema",
		Version:  "dev",
		LogLevel: "info",
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.RateLimit.Rate < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	if c.RateLimit.Rate > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = c.RateLimit.Rate
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if len(c.Sources) == 0 {
		return errors.New("no source files given")
	}
	return nil
}
