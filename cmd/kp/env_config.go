package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/aboutmydreams/kp/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides shell-profile overrides without requiring a YAML file.
type envConfig struct {
	ConfigPath string        // KP_CONFIG: config file path
	Signal     string        // KP_SIGNAL: default signal name
	Timeout    time.Duration // KP_TIMEOUT: per-command discovery timeout
	Skip       []string      // KP_SKIP: comma-separated tools to leave out
}

// knownEnvVars lists valid KP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"KP_CONFIG":  true,
	"KP_SIGNAL":  true,
	"KP_TIMEOUT": true,
	"KP_SKIP":    true,
}

// loadEnvConfig reads configuration from environment variables.
// KP_TIMEOUT values that do not parse or fall outside (0, config.MaxTimeout]
// are ignored, not errors.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: strings.TrimSpace(getenv("KP_CONFIG")),
		Signal:     strings.TrimSpace(getenv("KP_SIGNAL")),
		Skip:       splitList(getenv("KP_SKIP")),
	}

	if timeout := getenv("KP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 && d <= config.MaxTimeout {
			cfg.Timeout = d
		}
	}

	return cfg
}

// validateEnvSkip rejects KP_SKIP entries that name no discovery tool,
// as --skip does.
func validateEnvSkip(skip []string) error {
	for _, tool := range skip {
		if !slices.Contains(config.KnownTools, tool) {
			return newUsageError(ErrUnknownTool, "Unknown discovery tool in KP_SKIP: %s. Known tools: %s.",
				tool, strings.Join(config.KnownTools, ", "))
		}
	}
	return nil
}

// warnUnknownEnvVars logs warnings for unrecognized KP_* variables.
// Helps catch typos like KP_SIGNALS instead of KP_SIGNAL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "KP_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Environment values override the config file; CLI flags are applied later
// in resolveKillParams, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Signal != "" {
		cfg.Signal = env.Signal
		// An explicit default signal replaces a config-file force default.
		cfg.Force = false
	}
	if env.Timeout > 0 {
		cfg.Discovery.Timeout = env.Timeout.String()
	}
	for _, tool := range env.Skip {
		if !slices.Contains(cfg.Discovery.Skip, tool) {
			cfg.Discovery.Skip = append(cfg.Discovery.Skip, tool)
		}
	}
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
