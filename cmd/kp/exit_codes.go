package main

import (
	"errors"

	"github.com/aboutmydreams/kp/internal/config"
)

// Exit codes for the kp CLI.
// Scripts only distinguish success from failure, so argument errors and
// delivery failures share exit 1. "Nothing found" is a success.
const (
	ExitSuccess = 0 // Signals delivered, nothing found, help, version, dry run
	ExitFailure = 1 // Signal delivery failed, config error, doctor errors
	ExitUsage   = 1 // Invalid arguments
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if isUsageError(err) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitFailure
}
