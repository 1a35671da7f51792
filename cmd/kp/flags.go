package main

import (
	"errors"
	"io"
	"slices"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// killFlags holds all flags for the default kill command.
type killFlags struct {
	common  commonFlags
	force   bool
	signal  string
	dryRun  bool
	timeout time.Duration
	skip    []string
	help    bool
	version bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "trace each discovery step")
}

// newKillFlagSet registers every kill flag on a fresh FlagSet.
// Completion generation reuses it, so the FlagSet is the single source of truth.
func newKillFlagSet(f *killFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("kp", flag.ContinueOnError)

	fs.BoolVarP(&f.force, "force", "f", false, "use SIGKILL instead of the default SIGTERM")
	fs.StringVar(&f.signal, "signal", "", "send a specific signal (overrides --force)")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "list matching PIDs without signaling")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "timeout per discovery command (e.g. 5s)")
	fs.StringSliceVar(&f.skip, "skip", nil, "discovery tools to leave out (e.g. lsof,netstat)")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help message")
	fs.BoolVar(&f.version, "version", false, "show version information")

	addCommonFlags(fs, &f.common)

	return fs
}

// parseKillFlags parses kill flags and returns positional args.
// Parse failures come back as usage errors carrying the user-facing message.
func parseKillFlags(args []string) (*killFlags, []string, error) {
	f := &killFlags{}
	fs := newKillFlagSet(f)
	fs.SetOutput(io.Discard) // kp prints its own messages
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagParseError(err)
	}

	return f, fs.Args(), nil
}

// flagParseError turns a pflag error into a usage error.
func flagParseError(err error) error {
	var notExist *flag.NotExistError
	if errors.As(err, &notExist) {
		name := "--" + notExist.GetSpecifiedName()
		if notExist.GetSpecifiedShortnames() != "" {
			name = "-" + notExist.GetSpecifiedName()
		}
		return newUsageError(ErrUnknownOption, "Unknown option: %s", name)
	}
	return newUsageError(ErrBadFlag, "Invalid option: %v", err)
}

// wantsHelp reports whether -h or --help appears before a "--" terminator.
// Help wins over every other argument, including invalid ones.
func wantsHelp(args []string) bool {
	end := len(args)
	if i := slices.Index(args, "--"); i >= 0 {
		end = i
	}
	return slices.Contains(args[:end], "-h") || slices.Contains(args[:end], "--help")
}

// wantsVerbose reports whether -v or --verbose appears in args.
// main checks it before full parsing to configure runtime logging.
func wantsVerbose(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}
