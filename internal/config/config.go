// Package config provides configuration loading and validation for the CLI and web server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL = "ROASTER_API_URL"
	EnvMode   = "ROASTER_MODE"
	EnvPort   = "PORT"
)

// Defaults applied by MergeWithDefaults when no other source sets a value.
const (
	DefaultPort    = 8080
	DefaultTimeout = 30 * time.Second
	DefaultMode    = "roast"
)

// Config represents the roaster configuration that can be loaded from a JSON file.
// All fields are optional in the file; APIURL must be set by some source before Validate.
type Config struct {
	// Base URL of the analysis service
	APIURL string `json:"api_url,omitempty" validate:"required,url"`
	// Default critique mode
	Mode string `json:"mode,omitempty" validate:"omitempty,oneof=roast professional"`
	// Upload timeout, e.g. "30s"
	Timeout string `json:"timeout,omitempty"`
	// Web server port
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave fields empty.
func FromEnv() Config {
	cfg := Config{
		APIURL: strings.TrimSpace(os.Getenv(EnvAPIURL)),
		Mode:   strings.ToLower(strings.TrimSpace(os.Getenv(EnvMode))),
	}
	if port := os.Getenv(EnvPort); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	return cfg
}

// Validate checks that the configuration is complete and has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", jsonName(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'timeout' %q: %w", c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'timeout' must be positive")
		}
	}
	return nil
}

// TimeoutDuration returns the parsed timeout, or DefaultTimeout when unset or invalid.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.Mode == "" {
		result.Mode = defaults.Mode
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.Mode == "" {
		result.Mode = DefaultMode
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}

	return result
}

func jsonName(field string) string {
	switch field {
	case "APIURL":
		return "api_url"
	case "Mode":
		return "mode"
	case "Timeout":
		return "timeout"
	case "Port":
		return "port"
	default:
		return field
	}
}
