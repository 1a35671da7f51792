//go:build windows

package process

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// Send terminates pid. Windows has no signal delivery between processes,
// so every sig ends in TerminateProcess.
func Send(pid int, _ syscall.Signal) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}

	p, err := os.FindProcess(pid)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = p.Release() }()

	return classify(p.Kill())
}

// classify maps OpenProcess/TerminateProcess failures. A PID that no longer
// exists makes OpenProcess fail with ERROR_INVALID_PARAMETER.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, windows.ERROR_INVALID_PARAMETER):
		return fmt.Errorf("%w: %v", ErrGone, err)
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return fmt.Errorf("%w: %v", ErrPermission, err)
	default:
		return err
	}
}

// Elevated reports whether the current process token is elevated.
func Elevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
