package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("force: true\n"), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "missing.yaml"), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLookTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the fake tool")
	}

	dir := t.TempDir()
	tool := filepath.Join(dir, "fakelsof")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700); err != nil { // #nosec G306 -- must be executable
		t.Fatalf("writing tool: %v", err)
	}
	t.Setenv("PATH", dir)

	if got := LookTool("fakelsof"); got != tool {
		t.Errorf("LookTool(fakelsof) = %q, want %q", got, tool)
	}
	if got := LookTool("kp-no-such-tool-xyz"); got != "" {
		t.Errorf("LookTool(missing) = %q, want empty", got)
	}
}
