package main

import (
	"errors"
	"fmt"
)

// Sentinel errors for CLI operations.
var (
	ErrUnknownOption  = errors.New("unknown option")
	ErrBadFlag        = errors.New("invalid option")
	ErrMissingPort    = errors.New("missing port argument")
	ErrTooManyPorts   = errors.New("too many port arguments")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrUnknownTool    = errors.New("unknown discovery tool")
	ErrSignalFailed   = errors.New("failed to signal one or more processes")
)

// usageError is an argument error. Its message is printed verbatim above
// the usage text; the wrapped sentinel drives exit code selection.
type usageError struct {
	err error
	msg string
}

func newUsageError(err error, format string, args ...any) error {
	return &usageError{err: err, msg: fmt.Sprintf(format, args...)}
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Unwrap() error { return e.err }

// isUsageError reports whether err is an argument error.
func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}
