package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "kp: "+format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand or to the default kill command.
// Subcommand names can never parse as ports, so they cannot shadow one.
func runMain(args []string, env *Environment) int {
	if len(args) > 1 {
		switch args[1] {
		case "doctor":
			return runDoctorCmd(args[2:], env)
		case "completion":
			if err := runCompletion(args[2:], env); err != nil {
				fmt.Fprintln(env.Stderr, err)
				return exitCodeFor(err)
			}
			return ExitSuccess
		case "version":
			printVersion(env.Stdout)
			return ExitSuccess
		case "help":
			return runHelp(args[2:], env)
		}
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return runKillCmd(ctx, args[1:], env)
}
