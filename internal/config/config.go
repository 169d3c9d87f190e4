// Package config loads the CLI configuration. The SDK itself is
// configured programmatically; this file format exists only for the
// tcloud command.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIKey and APIKeyPassword are the Transaction.Cloud credentials.
	// The TRANSACTION_CLOUD_API_KEY and TRANSACTION_CLOUD_API_KEY_PASSWORD
	// environment variables override the file values.
	APIKey         string `yaml:"api_key"`
	APIKeyPassword string `yaml:"api_key_password"`

	// Sandbox selects the sandbox environment.
	Sandbox bool `yaml:"sandbox"`

	// DatabaseURL is the Postgres connection string used by the sync
	// command. Unused by the other commands.
	DatabaseURL string `yaml:"database_url"`

	// PollInterval is how often the sync command drains the change
	// feed, as a Go duration string. Defaults to "30s".
	PollInterval string `yaml:"poll_interval"`
}

// Load reads a YAML config file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{PollInterval: "30s"}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if v := os.Getenv("TRANSACTION_CLOUD_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("TRANSACTION_CLOUD_API_KEY_PASSWORD"); v != "" {
		cfg.APIKeyPassword = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config: api_key is required")
	}
	if c.APIKeyPassword == "" {
		return fmt.Errorf("config: api_key_password is required")
	}
	if _, err := time.ParseDuration(c.PollInterval); err != nil {
		return fmt.Errorf("config: invalid poll_interval %q: %w", c.PollInterval, err)
	}
	return nil
}

// Interval returns the parsed PollInterval. Validate must have passed.
func (c *Config) Interval() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}
