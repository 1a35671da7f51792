//go:build windows

package kp

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"
)

// windowsSignals maps the names accepted on Windows. Every one of them ends
// in TerminateProcess; the name is kept for reporting.
var windowsSignals = []Signal{
	{Name: "SIGHUP", Num: syscall.SIGHUP},
	{Name: "SIGINT", Num: syscall.SIGINT},
	{Name: "SIGQUIT", Num: syscall.SIGQUIT},
	{Name: "SIGKILL", Num: syscall.SIGKILL},
	{Name: "SIGTERM", Num: syscall.SIGTERM},
}

// LookupSignal resolves a signal by name ("SIGTERM", "term") or number ("15").
func LookupSignal(name string) (Signal, error) {
	canonical := canonicalSignalName(name)
	if canonical == "" {
		return Signal{}, fmt.Errorf("%w: empty name", ErrUnknownSignal)
	}

	for _, sig := range windowsSignals {
		if sig.Name == canonical || strconv.Itoa(int(sig.Num)) == canonical {
			return sig, nil
		}
	}
	return Signal{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSignal, name, strings.Join(SignalNames(), ", "))
}

// SignalNames lists the signal names accepted on this platform.
func SignalNames() []string {
	names := make([]string, len(windowsSignals))
	for i, sig := range windowsSignals {
		names[i] = sig.Name
	}
	return names
}
