package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/aboutmydreams/kp"
	"github.com/aboutmydreams/kp/internal/config"
	"github.com/aboutmydreams/kp/internal/fileutil"
	"github.com/aboutmydreams/kp/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Tools    []toolInfo `json:"tools"`
	Env      envInfo    `json:"environment"`
	Config   configInfo `json:"config"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds the detection result for one discovery tool.
type toolInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	Elevated bool   `json:"elevated"`
}

// configInfo holds config file detection results.
type configInfo struct {
	Path   string `json:"path,omitempty"`
	Loaded bool   `json:"loaded"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		default:
			fmt.Fprintf(env.Stderr, "Unknown option: %s\n", arg)
			printDoctorUsage(env.Stderr)
			return ExitUsage
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitFailure
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			Elevated: env.elevated(),
		},
	}

	skip := checkConfig(result, env)
	checkTools(result, env, skip)
	checkPrivileges(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig loads the active config, as a kill run would, and returns the
// tools it skips.
func checkConfig(result *doctorResult, env *Environment) []string {
	envCfg := loadEnvConfig(env.getenv)

	path := envCfg.ConfigPath
	if path == "" {
		path = env.defaultConfigPath()
		if path != "" && !fileutil.FileExists(path) {
			return envCfg.Skip
		}
	}
	if path == "" {
		return envCfg.Skip
	}

	result.Config.Path = path
	cfg, err := config.LoadConfig(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return envCfg.Skip
	}
	result.Config.Loaded = true
	applyEnvConfig(envCfg, cfg)
	return cfg.Discovery.Skip
}

// checkTools looks up every tool of the platform chain on PATH. In-process
// probes are always available.
func checkTools(result *doctorResult, env *Environment, skip []string) {
	probes := env.probes()
	tools := kp.Tools(probes)
	usable := 0
	var missing []string

	for _, name := range tools {
		info := toolInfo{Name: name}
		if isNative(probes, name) {
			info.Found = true
			info.Path = builtinPath
		} else if path := env.lookPath(name); path != "" {
			info.Found = true
			info.Path = path
		}
		info.Skipped = slices.Contains(skip, name)

		switch {
		case info.Found && !info.Skipped:
			usable++
		case !info.Found:
			missing = append(missing, name)
		}
		result.Tools = append(result.Tools, info)
	}

	if usable == 0 {
		result.Errors = append(result.Errors,
			"No discovery tool available"+hints.ForNoTools(tools))
		return
	}
	if len(missing) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Not found on PATH: %s (discovery falls back to the remaining tools)", strings.Join(missing, ", ")))
	}
}

const builtinPath = "built-in"

func isNative(probes []kp.Probe, tool string) bool {
	for _, p := range probes {
		if p.Tool == tool && p.Native != nil {
			return true
		}
	}
	return false
}

// checkPrivileges warns when sockets of other users may be invisible.
func checkPrivileges(result *doctorResult) {
	if result.Env.Elevated {
		return
	}
	if result.Env.OS == "windows" {
		result.Warnings = append(result.Warnings,
			"Not elevated: processes of other users cannot be terminated")
		return
	}
	result.Warnings = append(result.Warnings,
		"Not running as root: sockets and processes of other users may be hidden or refuse signals")
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "kp doctor")
	fmt.Fprintln(w)

	// Tools section
	fmt.Fprintln(w, "Discovery tools")
	for _, t := range r.Tools {
		switch {
		case t.Found && t.Skipped:
			fmt.Fprintf(w, "  [SKIP] %s (%s)\n", t.Name, t.Path)
		case t.Found:
			fmt.Fprintf(w, "  [OK] %s (%s)\n", t.Name, t.Path)
		default:
			fmt.Fprintf(w, "  [MISSING] %s\n", t.Name)
		}
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Elevated {
		fmt.Fprintln(w, "  [OK] Privileges: elevated")
	} else {
		fmt.Fprintln(w, "  [WARN] Privileges: not elevated")
	}
	fmt.Fprintln(w)

	// Config section
	fmt.Fprintln(w, "Config")
	switch {
	case r.Config.Loaded:
		fmt.Fprintf(w, "  [OK] Loaded %s\n", r.Config.Path)
	case r.Config.Path != "":
		fmt.Fprintf(w, "  [ERROR] Invalid %s\n", r.Config.Path)
	default:
		fmt.Fprintln(w, "  [OK] No config file (defaults)")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printDoctorUsage prints help for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: kp doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check which discovery tools are installed and whether kp runs elevated.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json    Output results as JSON")
}
