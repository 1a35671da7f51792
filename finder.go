package kp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

// DefaultTimeout bounds each external discovery command.
const DefaultTimeout = 10 * time.Second

// Probe is one step of the discovery chain: an external tool invocation and
// the parser for its output.
type Probe struct {
	// Tool is the executable name. It also names the probe for WithSkip.
	Tool string
	// Args builds the argument list for port.
	Args func(port Port) []string
	// OKExit lists the exit codes whose output is parsed. Empty means 0 only.
	OKExit []int
	// Parse extracts candidate PIDs from the captured output.
	Parse func(out Output, port Port) []int
	// SkipToolOnMissing drops the remaining probes of the same Tool when the
	// binary is not installed.
	SkipToolOnMissing bool
	// Native, when set, runs in-process instead of an external command.
	// Args, OKExit and Parse are ignored.
	Native func(ctx context.Context, port Port) ([]int, error)
}

// Command renders the invocation for port, for traces and diagnostics.
func (p Probe) Command(port Port) string {
	if p.Native != nil || p.Args == nil {
		return p.Tool
	}
	return strings.TrimSpace(p.Tool + " " + strings.Join(p.Args(port), " "))
}

func (p Probe) acceptsExit(code int) bool {
	if len(p.OKExit) == 0 {
		return code == 0
	}
	return slices.Contains(p.OKExit, code)
}

// FinderOption configures a Finder.
type FinderOption func(*Finder)

// Finder runs the discovery chain for a port.
type Finder struct {
	runner  Runner
	probes  []Probe
	timeout time.Duration
	skip    map[string]bool
	tracef  func(format string, args ...any)
	selfPID int
}

// WithRunner replaces the command runner (default ExecRunner).
func WithRunner(r Runner) FinderOption {
	return func(f *Finder) {
		f.runner = r
	}
}

// WithProbes replaces the platform discovery chain.
func WithProbes(probes []Probe) FinderOption {
	return func(f *Finder) {
		f.probes = probes
	}
}

// WithTimeout bounds each external command.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) FinderOption {
	if d <= 0 {
		panic("kp: WithTimeout duration must be positive")
	}
	return func(f *Finder) {
		f.timeout = d
	}
}

// WithSkip leaves the named tools out of the chain.
func WithSkip(tools ...string) FinderOption {
	return func(f *Finder) {
		for _, t := range tools {
			if t = strings.TrimSpace(t); t != "" {
				f.skip[t] = true
			}
		}
	}
}

// WithTracef receives one line per discovery step. Nil disables tracing.
func WithTracef(fn func(format string, args ...any)) FinderOption {
	return func(f *Finder) {
		f.tracef = fn
	}
}

// NewFinder creates a Finder with the platform discovery chain.
func NewFinder(opts ...FinderOption) *Finder {
	f := &Finder{
		runner:  ExecRunner{},
		probes:  DefaultProbes(),
		timeout: DefaultTimeout,
		skip:    make(map[string]bool),
		selfPID: os.Getpid(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Probes returns the chain the Finder will run, with skipped tools removed.
func (f *Finder) Probes() []Probe {
	out := make([]Probe, 0, len(f.probes))
	for _, p := range f.probes {
		if !f.skip[p.Tool] {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the PIDs bound to port. Probe failures are never returned:
// a missing tool, a failed run or a timeout moves on to the next probe, and
// an empty set means nothing was found. Only an invalid port or a cancelled
// ctx produce an error.
func (f *Finder) Find(ctx context.Context, port Port) (PIDSet, error) {
	if !port.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}

	pids := NewPIDSet()
	missing := make(map[string]bool)

	for _, p := range f.Probes() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery interrupted: %w", err)
		}
		if missing[p.Tool] {
			f.trace("skip %s: not installed", p.Command(port))
			continue
		}

		found, err := f.runProbe(ctx, p, port)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) && p.SkipToolOnMissing {
				missing[p.Tool] = true
			}
			f.trace("skip %s: %v", p.Command(port), err)
			continue
		}

		for _, pid := range found {
			if pid != f.selfPID {
				pids.Add(pid)
			}
		}
		f.trace("%s: %d pid(s)", p.Command(port), pids.Len())
		if pids.Len() > 0 {
			return pids, nil
		}
	}

	return pids, nil
}

// runProbe runs one probe under the per-command timeout.
func (f *Finder) runProbe(ctx context.Context, p Probe, port Port) ([]int, error) {
	runCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if p.Native != nil {
		return p.Native(runCtx, port)
	}

	out, err := f.runner.Run(runCtx, p.Tool, p.Args(port)...)
	if err != nil {
		return nil, err
	}
	if !p.acceptsExit(out.ExitCode) {
		return nil, fmt.Errorf("exit status %d", out.ExitCode)
	}
	return p.Parse(out, port), nil
}

func (f *Finder) trace(format string, args ...any) {
	if f.tracef != nil {
		f.tracef(format, args...)
	}
}

// Tools returns the distinct tool names of probes in chain order.
func Tools(probes []Probe) []string {
	var tools []string
	for _, p := range probes {
		if !slices.Contains(tools, p.Tool) {
			tools = append(tools, p.Tool)
		}
	}
	return tools
}
