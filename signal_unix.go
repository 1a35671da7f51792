//go:build !windows

package kp

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// maxSignal bounds the scan of the platform signal table.
const maxSignal = 64

// LookupSignal resolves a signal by name ("SIGHUP", "hup") or number ("1").
func LookupSignal(name string) (Signal, error) {
	canonical := canonicalSignalName(name)
	if canonical == "" {
		return Signal{}, fmt.Errorf("%w: empty name", ErrUnknownSignal)
	}

	if isDigits(canonical) {
		n, err := strconv.Atoi(canonical)
		if err == nil && n > 0 && n <= maxSignal {
			if sigName := unix.SignalName(syscall.Signal(n)); sigName != "" {
				return Signal{Name: sigName, Num: syscall.Signal(n)}, nil
			}
		}
		return Signal{}, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
	}

	num := unix.SignalNum(canonical)
	if num == 0 {
		return Signal{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSignal, name, strings.Join(SignalNames(), ", "))
	}
	return Signal{Name: canonical, Num: num}, nil
}

// SignalNames lists the signal names this platform can deliver, in signal
// number order.
func SignalNames() []string {
	names := make([]string, 0, 32)
	for n := 1; n <= maxSignal; n++ {
		if name := unix.SignalName(syscall.Signal(n)); name != "" {
			names = append(names, name)
		}
	}
	return names
}
