package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrEmptyPath      = errors.New("config path cannot be empty")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidValue   = errors.New("invalid config value")
)

// Limits for user-supplied values.
const (
	MaxSignalLength  = 16 // "SIGVTALRM" plus slack
	MaxTimeoutLength = 20 // "1m30s"
	MaxSkipEntries   = 16
	MaxTimeout       = 5 * time.Minute
)

// KnownTools are the discovery tools that discovery.skip may name.
var KnownTools = []string{"lsof", "fuser", "ss", "netstat", "powershell", "native"}

// Config holds the persisted defaults for kp.
type Config struct {
	Signal    string          `yaml:"signal"` // Default signal name (empty = SIGTERM, or SIGKILL with force)
	Force     bool            `yaml:"force"`
	Discovery DiscoveryConfig `yaml:"discovery"`
}

// DiscoveryConfig tunes the discovery chain.
type DiscoveryConfig struct {
	Timeout string   `yaml:"timeout"` // Per-command timeout, Go duration (empty = library default)
	Skip    []string `yaml:"skip"`    // Tool names left out of the chain
}

// TimeoutDuration parses Timeout. It returns 0 when Timeout is empty.
func (d DiscoveryConfig) TimeoutDuration() (time.Duration, error) {
	if d.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(d.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: discovery.timeout: %v", ErrInvalidValue, err)
	}
	if timeout <= 0 || timeout > MaxTimeout {
		return 0, fmt.Errorf("%w: discovery.timeout: must be in (0, %s], got %s", ErrInvalidValue, MaxTimeout, timeout)
	}
	return timeout, nil
}

// Validate checks lengths, the timeout and skip entries.
// Called by LoadConfig; also usable on configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("signal", c.Signal, MaxSignalLength); err != nil {
		return err
	}
	if err := validateFieldLength("discovery.timeout", c.Discovery.Timeout, MaxTimeoutLength); err != nil {
		return err
	}
	if _, err := c.Discovery.TimeoutDuration(); err != nil {
		return err
	}

	if len(c.Discovery.Skip) > MaxSkipEntries {
		return fmt.Errorf("%w: discovery.skip (%d entries, max %d)", ErrFieldTooLong, len(c.Discovery.Skip), MaxSkipEntries)
	}
	for i, tool := range c.Discovery.Skip {
		if !slices.Contains(KnownTools, tool) {
			return fmt.Errorf("%w: discovery.skip[%d]: unknown tool %q (known: %s)",
				ErrInvalidValue, i, tool, strings.Join(KnownTools, ", "))
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: library defaults apply.
func DefaultConfig() *Config {
	return &Config{}
}

// DefaultPath returns the user config location, e.g. ~/.config/kp/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, "kp", "config.yaml"), nil
}

// LoadConfig loads and validates the config at path.
// A missing file is an error: an explicit path never falls back silently.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := unmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
