package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context that is canceled when one of
// shutdownSignals is received, so Ctrl+C stops a hanging discovery tool.
// Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
