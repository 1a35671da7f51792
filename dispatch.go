package kp

import (
	"errors"

	"github.com/aboutmydreams/kp/internal/process"
)

// ReasonPermissionDenied is the Failure reason for permission errors.
const ReasonPermissionDenied = "permission denied"

// Sender delivers a signal to one process.
type Sender interface {
	Send(pid int, sig Signal) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(pid int, sig Signal) error

// Send implements Sender.
func (fn SenderFunc) Send(pid int, sig Signal) error {
	return fn(pid, sig)
}

// DefaultSender delivers signals through the operating system.
func DefaultSender() Sender {
	return SenderFunc(func(pid int, sig Signal) error {
		return process.Send(pid, sig.Num)
	})
}

// Failure records a PID that could not be signaled.
type Failure struct {
	PID    int
	Reason string
	Err    error
}

// Report is the outcome of a Dispatch.
type Report struct {
	Signal   Signal
	Signaled []int
	Failures []Failure
}

// OK reports whether every PID was signaled.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// PermissionDenied reports whether any failure was a permission error.
func (r Report) PermissionDenied() bool {
	for _, f := range r.Failures {
		if f.Reason == ReasonPermissionDenied {
			return true
		}
	}
	return false
}

// Dispatch sends sig to every pid in order and collects the outcome.
// A process that exited before delivery counts as signaled.
func Dispatch(sender Sender, pids []int, sig Signal) Report {
	report := Report{Signal: sig}
	for _, pid := range pids {
		err := sender.Send(pid, sig)
		switch {
		case err == nil, errors.Is(err, ErrProcessGone):
			report.Signaled = append(report.Signaled, pid)
		case errors.Is(err, ErrPermissionDenied):
			report.Failures = append(report.Failures, Failure{PID: pid, Reason: ReasonPermissionDenied, Err: err})
		default:
			report.Failures = append(report.Failures, Failure{PID: pid, Reason: err.Error(), Err: err})
		}
	}
	return report
}
