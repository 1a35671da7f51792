//go:build windows

package main

import "os"

// syscall.SIGTERM is never delivered to Go programs on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
