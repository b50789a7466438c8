// Package signals cancels command contexts on interrupt.
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/endorses/seqscan/internal/pkg/logger"
)

// SetupHandler cancels the context on SIGINT, SIGTERM, or SIGHUP.
// Returns a cleanup function that should be called when the signal handler is no longer needed
func SetupHandler(ctx context.Context, cancel context.CancelFunc) (cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case sig, ok := <-sigCh:
			if !ok {
				return
			}
			logger.Info("Received signal, stopping", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
		<-done
	}
}

// Context returns a child of parent that is cancelled on the first signal.
// The returned stop function releases the handler and cancels the context.
func Context(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	cleanup := SetupHandler(ctx, cancel)
	return ctx, func() {
		cleanup()
		cancel()
	}
}
