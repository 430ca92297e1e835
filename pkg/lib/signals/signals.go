package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Context returns a child of parent cancelled on the first SIGTERM or
// SIGINT. A second signal terminates the program with exit code 1. The
// returned stop function releases the signal handler.
func Context(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)
	done := make(chan struct{})
	go func() {
		select {
		case <-c:
			cancel()
		case <-done:
			return
		}
		select {
		case <-c:
			os.Exit(1) // second signal. Exit directly.
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(c)
		close(done)
		cancel()
	}
}
