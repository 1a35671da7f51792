//go:build !windows

package process

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Send delivers sig to pid with kill(2).
// ESRCH is reported as ErrGone and EPERM as ErrPermission.
func Send(pid int, sig syscall.Signal) error {
	if pid <= 0 {
		// kill(2) treats 0 and negative PIDs as process groups.
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return classify(unix.Kill(pid, sig))
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ESRCH), errors.Is(err, os.ErrProcessDone):
		return fmt.Errorf("%w: %v", ErrGone, err)
	case errors.Is(err, unix.EPERM):
		return fmt.Errorf("%w: %v", ErrPermission, err)
	default:
		return err
	}
}

// Elevated reports whether the current process runs as root.
func Elevated() bool {
	return os.Geteuid() == 0
}
