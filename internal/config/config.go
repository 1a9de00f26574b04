// Package config loads dashboard configuration from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/triage/internal/constants"
)

// GatewayConfig controls the simulated network behaviour of the data gateway.
type GatewayConfig struct {
	// LatencyFactor scales every operation's latency window. 0 disables latency.
	LatencyFactor float64 `yaml:"latency_factor"`
	// FailureRate is the probability (0.0 - 1.0) that a call fails transiently.
	FailureRate float64 `yaml:"failure_rate"`
	// Timeout bounds each call; 0 means no client-side timeout.
	Timeout time.Duration `yaml:"timeout"`
}

type UserConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Config struct {
	Backend  string        `yaml:"backend"`
	Debug    bool          `yaml:"debug"`
	Debounce time.Duration `yaml:"debounce"`
	Gateway  GatewayConfig `yaml:"gateway"`
	User     UserConfig    `yaml:"user"`

	// Dir is the directory the config was resolved from; logs live beneath it.
	Dir string `yaml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Backend:  constants.BackendMemory,
		Debounce: constants.DebounceDelay,
		Gateway: GatewayConfig{
			LatencyFactor: constants.DefaultLatencyFactor,
			FailureRate:   constants.DefaultFailureRate,
			Timeout:       constants.DefaultTimeout,
		},
		User: UserConfig{
			ID:   constants.DefaultUserID,
			Name: constants.DefaultUserName,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; the defaults are returned with Dir set to the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	expanded, err := ExpandPath(path)
	if err != nil {
		return cfg, err
	}
	cfg.Dir = filepath.Dir(expanded)

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}
	cfg.Dir = filepath.Dir(expanded)
	return cfg, cfg.Validate()
}

// Validate checks value ranges after loading and flag overrides.
func (c Config) Validate() error {
	switch c.Backend {
	case constants.BackendMemory, constants.BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (expected %s or %s)", c.Backend, constants.BackendMemory, constants.BackendSQLite)
	}
	if c.Gateway.FailureRate < 0 || c.Gateway.FailureRate > 1 {
		return fmt.Errorf("gateway.failure_rate must be between 0 and 1, got %v", c.Gateway.FailureRate)
	}
	if c.Gateway.LatencyFactor < 0 {
		return fmt.Errorf("gateway.latency_factor must not be negative, got %v", c.Gateway.LatencyFactor)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %v", c.Debounce)
	}
	if strings.TrimSpace(c.User.Name) == "" {
		return fmt.Errorf("user.name cannot be empty")
	}
	return nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
