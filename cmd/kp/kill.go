package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/aboutmydreams/kp"
	"github.com/aboutmydreams/kp/internal/config"
	"github.com/aboutmydreams/kp/internal/fileutil"
	"github.com/aboutmydreams/kp/internal/hints"
)

// killParams is the fully resolved input of one kill run.
type killParams struct {
	port    kp.Port
	signal  kp.Signal
	timeout time.Duration
	skip    []string
	dryRun  bool
	quiet   bool
	verbose bool
}

// runKillCmd parses args, runs discovery and signaling, and returns an exit code.
func runKillCmd(ctx context.Context, args []string, env *Environment) int {
	if wantsHelp(args) {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	flags, positional, err := parseKillFlags(args)
	if err != nil {
		return reportError(err, env)
	}
	// Combined shorthands (-fh) and --help=true only show up after parsing.
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		printVersion(env.Stdout)
		return ExitSuccess
	}

	params, err := resolveKillParams(flags, positional, env)
	if err != nil {
		return reportError(err, env)
	}

	return reportError(runKill(ctx, params, env), env)
}

// reportError prints err the way its kind requires and returns the exit code.
// Usage errors get the usage text; delivery failures were already itemized.
func reportError(err error, env *Environment) int {
	switch {
	case err == nil:
	case isUsageError(err):
		fmt.Fprintln(env.Stderr, err)
		if errors.Is(err, kp.ErrUnknownSignal) {
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForUnknownSignal(), "\n"))
		}
		fmt.Fprintln(env.Stderr)
		printUsage(env.Stderr)
	case errors.Is(err, ErrSignalFailed):
	case errors.Is(err, config.ErrConfigNotFound):
		fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hints.ForConfigNotFound(env.defaultConfigPath()))
	default:
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
	}
	return exitCodeFor(err)
}

// resolveKillParams validates positional args and merges flags, environment
// and config file. Argument errors are checked before any file is read.
func resolveKillParams(flags *killFlags, positional []string, env *Environment) (*killParams, error) {
	port, err := resolvePort(positional)
	if err != nil {
		return nil, err
	}

	envCfg := loadEnvConfig(env.getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.environ())
	}
	if err := validateEnvSkip(envCfg.Skip); err != nil {
		return nil, err
	}

	cfg, err := loadKillConfig(flags.common.config, envCfg, env)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)

	sig, err := resolveSignal(flags, cfg)
	if err != nil {
		return nil, err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return nil, err
	}

	skip, err := resolveSkip(flags.skip, cfg)
	if err != nil {
		return nil, err
	}

	return &killParams{
		port:    port,
		signal:  sig,
		timeout: timeout,
		skip:    skip,
		dryRun:  flags.dryRun,
		quiet:   flags.common.quiet,
		verbose: flags.common.verbose,
	}, nil
}

// resolvePort requires exactly one positional argument holding a valid port.
func resolvePort(positional []string) (kp.Port, error) {
	switch len(positional) {
	case 0:
		return 0, newUsageError(ErrMissingPort, "Missing <port> argument.")
	case 1:
	default:
		return 0, newUsageError(ErrTooManyPorts, "Only one <port> argument is supported.")
	}

	port, err := kp.ParsePort(positional[0])
	if err != nil {
		return 0, newUsageError(err, "Invalid port: %s. Expected an integer between %d and %d.",
			positional[0], kp.MinPort, kp.MaxPort)
	}
	return port, nil
}

// loadKillConfig loads the config named by --config or KP_CONFIG, or the
// default config file when it exists. An explicit path must exist.
func loadKillConfig(flagPath string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	path := flagPath
	if path == "" {
		path = envCfg.ConfigPath
	}
	if path != "" {
		return config.LoadConfig(path)
	}

	if def := env.defaultConfigPath(); def != "" && fileutil.FileExists(def) {
		return config.LoadConfig(def)
	}
	return config.DefaultConfig(), nil
}

// resolveSignal applies: --signal > --force > env/config signal > config force > SIGTERM.
func resolveSignal(flags *killFlags, cfg *config.Config) (kp.Signal, error) {
	explicit := flags.signal
	force := flags.force
	if explicit == "" && !force {
		explicit = cfg.Signal
		force = cfg.Force
	}

	sig, err := kp.ResolveSignal(explicit, force)
	if err != nil {
		return kp.Signal{}, newUsageError(err, "Invalid signal: %s. Known signals: %s.",
			explicit, strings.Join(kp.SignalNames(), ", "))
	}
	return sig, nil
}

// resolveTimeout applies: --timeout > KP_TIMEOUT/config > library default.
func resolveTimeout(flagTimeout time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagTimeout != 0 {
		if flagTimeout < 0 || flagTimeout > config.MaxTimeout {
			return 0, newUsageError(ErrInvalidTimeout, "Invalid timeout: %s. Expected a duration up to %s.",
				flagTimeout, config.MaxTimeout)
		}
		return flagTimeout, nil
	}

	timeout, err := cfg.Discovery.TimeoutDuration()
	if err != nil {
		return 0, err
	}
	if timeout == 0 {
		return kp.DefaultTimeout, nil
	}
	return timeout, nil
}

// resolveSkip merges --skip with env/config skips and rejects unknown tools.
func resolveSkip(flagSkip []string, cfg *config.Config) ([]string, error) {
	skip := slices.Clone(cfg.Discovery.Skip)
	for _, tool := range flagSkip {
		tool = strings.TrimSpace(tool)
		if tool == "" {
			continue
		}
		if !slices.Contains(config.KnownTools, tool) {
			return nil, newUsageError(ErrUnknownTool, "Unknown discovery tool: %s. Known tools: %s.",
				tool, strings.Join(config.KnownTools, ", "))
		}
		if !slices.Contains(skip, tool) {
			skip = append(skip, tool)
		}
	}
	return skip, nil
}

// runKill discovers the PIDs bound to params.port and signals them.
func runKill(ctx context.Context, params *killParams, env *Environment) error {
	opts := append(env.finderOptions(),
		kp.WithTimeout(params.timeout),
		kp.WithSkip(params.skip...),
	)
	if params.verbose {
		opts = append(opts, kp.WithTracef(func(format string, args ...any) {
			fmt.Fprintf(env.Stderr, "kp: "+format+"\n", args...)
		}))
	}

	pids, err := kp.NewFinder(opts...).Find(ctx, params.port)
	if err != nil {
		return err
	}

	if pids.Len() == 0 {
		if !params.quiet {
			fmt.Fprintf(env.Stdout, "No process found listening on TCP port %d.\n", params.port)
		}
		if params.verbose {
			if hint := hints.ForNothingFound(); hint != "" {
				fmt.Fprintln(env.Stderr, strings.TrimPrefix(hint, "\n"))
			}
		}
		return nil
	}

	if params.dryRun {
		if !params.quiet {
			printDryRun(ctx, env, params.signal, pids.Sorted())
		}
		return nil
	}

	report := kp.Dispatch(env.sender(), pids.Sorted(), params.signal)
	printReport(report, params.quiet, env)

	if !report.OK() {
		return fmt.Errorf("%w: %d of %d", ErrSignalFailed, len(report.Failures), pids.Len())
	}
	return nil
}

// printReport writes successes to stdout and failures to stderr.
func printReport(report kp.Report, quiet bool, env *Environment) {
	if len(report.Signaled) > 0 && !quiet {
		fmt.Fprintf(env.Stdout, "Sent %s to %s.\n", report.Signal, formatPIDs(report.Signaled))
	}

	if report.OK() {
		return
	}

	fmt.Fprintln(env.Stderr, "Failed to signal the following PID(s):")
	for _, f := range report.Failures {
		fmt.Fprintf(env.Stderr, "  - %d (%s)\n", f.PID, f.Reason)
	}
	if report.PermissionDenied() {
		if hint := hints.ForPermissionDenied(); hint != "" {
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hint, "\n"))
		}
	}
}

// formatPIDs renders "PID: 1" or "PIDs: 1, 2".
func formatPIDs(pids []int) string {
	parts := make([]string, len(pids))
	for i, pid := range pids {
		parts[i] = strconv.Itoa(pid)
	}
	label := "PID"
	if len(pids) > 1 {
		label = "PIDs"
	}
	return label + ": " + strings.Join(parts, ", ")
}

// printDryRun lists what a real run would signal, naming each process when
// its name can be read.
func printDryRun(ctx context.Context, env *Environment, sig kp.Signal, pids []int) {
	fmt.Fprintf(env.Stdout, "Would send %s to %s.\n", sig, formatPIDs(pids))
	for _, pid := range pids {
		if name := env.processName(ctx, pid); name != "" {
			fmt.Fprintf(env.Stdout, "  - %d (%s)\n", pid, name)
		}
	}
}
