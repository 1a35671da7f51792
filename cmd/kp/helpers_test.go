package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aboutmydreams/kp"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake runner, sender and environment
// ---------------------------------------------------------------------------

// fakeRunner answers commands from a map keyed by the full command line.
// Unknown commands exit 1 with no output, like a tool that found nothing.
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]string
	calls   []string
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) (kp.Output, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmdline)

	if out, ok := r.results[cmdline]; ok {
		return kp.Output{Stdout: []byte(out)}, nil
	}
	return kp.Output{ExitCode: 1}, nil
}

func (r *fakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// sentSignal records one Send call.
type sentSignal struct {
	PID    int
	Signal string
}

// fakeSender records deliveries and returns a canned error per PID.
type fakeSender struct {
	mu   sync.Mutex
	errs map[int]error
	sent []sentSignal
}

func (s *fakeSender) Send(pid int, sig kp.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentSignal{PID: pid, Signal: sig.Name})
	return s.errs[pid]
}

func (s *fakeSender) Sent() []sentSignal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentSignal(nil), s.sent...)
}

// testProbes is a two-tool chain matching the fakeRunner keys used in tests.
func testProbes() []kp.Probe {
	return []kp.Probe{
		{
			Tool:              "lsof",
			Args:              func(p kp.Port) []string { return []string{"-ti", ":" + p.String()} },
			Parse:             tokenPIDs,
			SkipToolOnMissing: true,
		},
		{
			Tool:   "fuser",
			Args:   func(p kp.Port) []string { return []string{"-n", "tcp", p.String()} },
			OKExit: []int{0, 1},
			Parse:  tokenPIDs,
		},
	}
}

func tokenPIDs(out kp.Output, _ kp.Port) []int {
	var pids []int
	for _, tok := range strings.Fields(string(out.Stdout)) {
		if pid, err := strconv.Atoi(tok); err == nil {
			pids = append(pids, pid)
		}
	}
	return pids
}

// testEnv bundles an Environment with its fakes and captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *fakeRunner
	sender *fakeSender
	vars   map[string]string
}

// newTestEnv returns an isolated environment: no real tools, no real
// signals, no user config file.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		runner: &fakeRunner{results: map[string]string{}},
		sender: &fakeSender{errs: map[int]error{}},
		vars:   map[string]string{},
	}
	missingDefault := filepath.Join(t.TempDir(), "kp", "config.yaml")

	te.Environment = &Environment{
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(key string) string { return te.vars[key] },
		Environ: func() []string {
			var out []string
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		ConfigPath:  func() (string, error) { return missingDefault, nil },
		LookPath:    func(tool string) string { return "/usr/bin/" + tool },
		Elevated:    func() bool { return false },
		Runner:      te.runner,
		Sender:      te.sender,
		Probes:      testProbes(),
		ProcessName: func(context.Context, int) string { return "" },
	}
	return te
}

// writeTestConfig writes content to a config file in a temp dir.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
