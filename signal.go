package kp

import (
	"strings"
	"syscall"
)

// Signal names used when no explicit signal is requested.
const (
	DefaultSignalName = "SIGTERM"
	ForceSignalName   = "SIGKILL"
)

// Signal is the signal delivered to every discovered process.
type Signal struct {
	Name string
	Num  syscall.Signal
}

func (s Signal) String() string {
	return s.Name
}

// ResolveSignal picks the signal to send. A non-empty explicit name wins;
// otherwise force selects SIGKILL and the default is SIGTERM.
func ResolveSignal(explicit string, force bool) (Signal, error) {
	name := strings.TrimSpace(explicit)
	if name == "" {
		name = DefaultSignalName
		if force {
			name = ForceSignalName
		}
	}
	return LookupSignal(name)
}

// canonicalSignalName upper-cases name and adds the SIG prefix when missing,
// so "term", "TERM" and "SIGTERM" all resolve alike.
func canonicalSignalName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" || isDigits(upper) || strings.HasPrefix(upper, "SIG") {
		return upper
	}
	return "SIG" + upper
}
