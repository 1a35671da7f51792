package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: kp <port> [options]")
	fmt.Fprintln(w, "       kp <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Send a signal to every process bound to a TCP port.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -f, --force             Use SIGKILL instead of the default SIGTERM")
	fmt.Fprintln(w, "      --signal=<name>     Send a specific signal (overrides --force)")
	fmt.Fprintln(w, "  -n, --dry-run           List matching PIDs without signaling")
	fmt.Fprintln(w, "  -t, --timeout <dur>     Timeout per discovery command (default 10s)")
	fmt.Fprintln(w, "      --skip <tools>      Discovery tools to leave out (e.g. lsof,netstat)")
	fmt.Fprintln(w, "  -c, --config <path>     Config file path")
	fmt.Fprintln(w, "  -q, --quiet             Only show errors")
	fmt.Fprintln(w, "  -v, --verbose           Trace each discovery step")
	fmt.Fprintln(w, "      --version           Show version information")
	fmt.Fprintln(w, "  -h, --help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor       Check which discovery tools are available")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  KP_CONFIG, KP_SIGNAL, KP_TIMEOUT, KP_SKIP")
}

// printVersion prints the version line.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "kp %s\n", Version)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: kp version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: kp help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
