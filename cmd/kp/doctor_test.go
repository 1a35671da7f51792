package main

// Notes:
// - runDoctorCmd: tool detection and privileges come from the injected
//   Environment, so results do not depend on the host.
// - We test status selection, JSON output, config reporting and argument
//   handling.

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aboutmydreams/kp"
)

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Status and output
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("tools found, not elevated", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		if code := runDoctorCmd(nil, te.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, want 0", code)
		}

		out := te.stdout.String()
		for _, want := range []string{
			"kp doctor",
			"[OK] lsof (/usr/bin/lsof)",
			"[OK] fuser (/usr/bin/fuser)",
			"[WARN] Privileges: not elevated",
			"[OK] No config file (defaults)",
			"Status: Ready with warnings",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("elevated is ready", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.Elevated = func() bool { return true }
		if code := runDoctorCmd(nil, te.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.Contains(te.stdout.String(), "Status: Ready\n") {
			t.Errorf("output:\n%s", te.stdout.String())
		}
	})

	t.Run("no tools is an error", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.LookPath = func(string) string { return "" }
		if code := runDoctorCmd(nil, te.Environment); code != ExitFailure {
			t.Errorf("exit code = %d, want %d", code, ExitFailure)
		}

		out := te.stdout.String()
		for _, want := range []string{"[MISSING] lsof", "No discovery tool available", "install one of: lsof, fuser", "Status: Not ready"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("native probe needs no PATH", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.Probes = append(testProbes(), kp.NativeProbe())
		te.LookPath = func(string) string { return "" }
		if code := runDoctorCmd(nil, te.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, want 0", code)
		}
		out := te.stdout.String()
		if !strings.Contains(out, "[OK] native (built-in)") || !strings.Contains(out, "Not found on PATH: lsof, fuser") {
			t.Errorf("output:\n%s", out)
		}
	})

	t.Run("one tool missing warns", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.Elevated = func() bool { return true }
		te.LookPath = func(tool string) string {
			if tool == "fuser" {
				return ""
			}
			return "/usr/sbin/" + tool
		}
		if code := runDoctorCmd(nil, te.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.Contains(te.stdout.String(), "Not found on PATH: fuser") {
			t.Errorf("output:\n%s", te.stdout.String())
		}
	})

	t.Run("every found tool skipped is an error", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.vars["KP_SKIP"] = "lsof,fuser"
		if code := runDoctorCmd(nil, te.Environment); code != ExitFailure {
			t.Errorf("exit code = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(te.stdout.String(), "[SKIP] lsof") {
			t.Errorf("output:\n%s", te.stdout.String())
		}
	})

	t.Run("invalid config is an error", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.vars["KP_CONFIG"] = writeTestConfig(t, "singal: SIGINT\n")
		if code := runDoctorCmd(nil, te.Environment); code != ExitFailure {
			t.Errorf("exit code = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(te.stdout.String(), "[ERROR] Invalid") {
			t.Errorf("output:\n%s", te.stdout.String())
		}
	})

	t.Run("config skip is reported", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		te.vars["KP_CONFIG"] = writeTestConfig(t, "discovery:\n  skip: [lsof]\n")
		if code := runDoctorCmd(nil, te.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, want 0", code)
		}
		out := te.stdout.String()
		if !strings.Contains(out, "[SKIP] lsof") || !strings.Contains(out, "[OK] Loaded ") {
			t.Errorf("output:\n%s", out)
		}
	})
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	if code := runDoctorCmd([]string{"--json"}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}

	var got doctorResult
	if err := json.Unmarshal(te.stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, te.stdout.String())
	}
	if got.Status != "warnings" {
		t.Errorf("Status = %q, want warnings", got.Status)
	}
	want := []toolInfo{
		{Name: "lsof", Found: true, Path: "/usr/bin/lsof"},
		{Name: "fuser", Found: true, Path: "/usr/bin/fuser"},
	}
	if diff := cmp.Diff(want, got.Tools); diff != "" {
		t.Errorf("Tools mismatch (-want +got):\n%s", diff)
	}
	if got.Env.Elevated {
		t.Error("Env.Elevated = true, want false")
	}
}

func TestRunDoctorCmd_Args(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		if code := runDoctorCmd([]string{"--help"}, te.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.HasPrefix(te.stdout.String(), "Usage: kp doctor") {
			t.Errorf("stdout = %q", te.stdout.String())
		}
	})

	t.Run("unknown option", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		if code := runDoctorCmd([]string{"--yaml"}, te.Environment); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(te.stderr.String(), "Unknown option: --yaml") {
			t.Errorf("stderr = %q", te.stderr.String())
		}
	})
}
