package kp

import (
	"fmt"
	"strconv"
	"strings"
)

// Port is a TCP port number.
type Port int

// Valid port range.
const (
	MinPort Port = 1
	MaxPort Port = 65535
)

// ParsePort parses a base-10 port number in the range MinPort..MaxPort.
// Surrounding whitespace is ignored; signs, prefixes and trailing text are not.
func ParsePort(s string) (Port, error) {
	trimmed := strings.TrimSpace(s)
	if !isDigits(trimmed) {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidPort, s)
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil || !Port(n).Valid() {
		return 0, fmt.Errorf("%w: %q is outside %d-%d", ErrInvalidPort, s, MinPort, MaxPort)
	}
	return Port(n), nil
}

// Valid reports whether p is a usable TCP port.
func (p Port) Valid() bool {
	return p >= MinPort && p <= MaxPort
}

func (p Port) String() string {
	return strconv.Itoa(int(p))
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
