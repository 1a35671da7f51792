// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"os/exec"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// LookTool returns the resolved path of an executable on PATH, or "" when it
// is not installed.
func LookTool(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		return ""
	}
	return path
}
