// Package process delivers signals to other processes and classifies the
// outcome into the cases callers act on: delivered, already gone, or denied.
package process

import "errors"

// Sentinel errors for signal delivery.
var (
	ErrGone       = errors.New("process already exited")
	ErrPermission = errors.New("permission denied")
	ErrInvalidPID = errors.New("invalid pid")
)
