// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"

	"github.com/aboutmydreams/kp/internal/process"
)

// GOOS selects platform wording. Tests override it.
var GOOS = runtime.GOOS

// IsElevated reports whether kp runs as root or Administrator. Tests override it.
var IsElevated = process.Elevated

// ForPermissionDenied returns a hint for signals refused by the OS.
func ForPermissionDenied() string {
	if IsElevated() {
		return ""
	}
	if GOOS == "windows" {
		return format("run kp from an elevated (Administrator) prompt")
	}
	return format("the process belongs to another user; re-run with sudo")
}

// ForNothingFound returns a hint when discovery came back empty.
// Unprivileged lsof and ss cannot see sockets owned by other users.
func ForNothingFound() string {
	if IsElevated() || GOOS == "windows" {
		return ""
	}
	return format("sockets owned by other users are hidden; re-run with sudo to include them")
}

// ForNoTools returns a hint listing the tools kp can use for discovery.
func ForNoTools(tools []string) string {
	if len(tools) == 0 {
		return ""
	}
	return format("install one of: " + strings.Join(tools, ", "))
}

// ForUnknownSignal returns a hint on how to spell a signal.
func ForUnknownSignal() string {
	return format("use a name like SIGTERM or TERM, or a number like 15")
}

// ForConfigNotFound returns a hint for a missing config file.
func ForConfigNotFound(defaultPath string) string {
	hint := "use --config /path/to/config.yaml"
	if defaultPath != "" {
		hint += " or create " + defaultPath
	}
	return format(hint)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
