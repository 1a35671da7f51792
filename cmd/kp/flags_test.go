package main

// Notes:
// - parseKillFlags: we test short/long forms, interspersed positionals and
//   the translation of pflag errors into usage messages.
// - wantsHelp/wantsVerbose: we test the pre-parse scans used by runKillCmd
//   and main.

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestParseKillFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseKillFlags(t *testing.T) {
	t.Parallel()

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		args := []string{
			"-f", "--signal=INT", "-n", "-t", "3s", "--skip", "lsof,ss",
			"-c", "kp.yaml", "-q", "-v", "8080",
		}
		f, positional, err := parseKillFlags(args)
		if err != nil {
			t.Fatalf("parseKillFlags() unexpected error: %v", err)
		}

		if !f.force || f.signal != "INT" || !f.dryRun || f.timeout != 3*time.Second {
			t.Errorf("kill flags = %+v", f)
		}
		if diff := cmp.Diff([]string{"lsof", "ss"}, f.skip); diff != "" {
			t.Errorf("skip mismatch (-want +got):\n%s", diff)
		}
		if f.common.config != "kp.yaml" || !f.common.quiet || !f.common.verbose {
			t.Errorf("common flags = %+v", f.common)
		}
		if diff := cmp.Diff([]string{"8080"}, positional); diff != "" {
			t.Errorf("positional mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("long forms", func(t *testing.T) {
		t.Parallel()

		f, positional, err := parseKillFlags([]string{"3000", "--force", "--dry-run", "--timeout", "1m", "--version"})
		if err != nil {
			t.Fatalf("parseKillFlags() unexpected error: %v", err)
		}
		if !f.force || !f.dryRun || f.timeout != time.Minute || !f.version {
			t.Errorf("kill flags = %+v", f)
		}
		if diff := cmp.Diff([]string{"3000"}, positional); diff != "" {
			t.Errorf("positional mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("terminator keeps positionals", func(t *testing.T) {
		t.Parallel()

		_, positional, err := parseKillFlags([]string{"--", "8080", "9090"})
		if err != nil {
			t.Fatalf("parseKillFlags() unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"8080", "9090"}, positional); diff != "" {
			t.Errorf("positional mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestParseKillFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"unknown long", []string{"--nope"}, ErrUnknownOption, "Unknown option: --nope"},
		{"unknown short", []string{"-z"}, ErrUnknownOption, "Unknown option: -z"},
		{"bad duration", []string{"--timeout=soon"}, ErrBadFlag, ""},
		{"missing value", []string{"--signal"}, ErrBadFlag, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := parseKillFlags(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseKillFlags(%v) error = %v, want %v", tt.args, err, tt.wantErr)
			}
			if !isUsageError(err) {
				t.Errorf("parseKillFlags(%v) error is not a usage error", tt.args)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWantsHelp - Help detection before parsing
// ---------------------------------------------------------------------------

func TestWantsHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-h"}, true},
		{[]string{"8080", "--help"}, true},
		{[]string{"bad", "--bogus", "-h"}, true},
		{[]string{"8080"}, false},
		{[]string{"--", "-h"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := wantsHelp(tt.args); got != tt.want {
			t.Errorf("wantsHelp(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	if !wantsVerbose([]string{"8080", "-v"}) || !wantsVerbose([]string{"--verbose"}) {
		t.Error("wantsVerbose() missed a verbose flag")
	}
	if wantsVerbose([]string{"8080", "--version"}) {
		t.Error("wantsVerbose(--version) = true, want false")
	}
}
