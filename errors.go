package kp

import (
	"errors"

	"github.com/aboutmydreams/kp/internal/process"
)

// Sentinel errors for library operations.
var (
	ErrInvalidPort   = errors.New("invalid port")
	ErrUnknownSignal = errors.New("unknown signal")

	// Signal delivery outcomes. Custom Senders wrap these so Dispatch can
	// tell an exited process and a permission error from other failures.
	ErrProcessGone      = process.ErrGone
	ErrPermissionDenied = process.ErrPermission
)
