// Package shutdown stops a long-running component when the process is
// signalled or its context ends.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ErrTimeout is returned when the runner outlives the shutdown timeout.
var ErrTimeout = errors.New("shutdown timeout exceeded")

// RunWithGracefulShutdown calls runner on a goroutine and waits for it. On
// SIGINT, SIGTERM or cancellation of ctx it cancels the runner's context,
// calls stop, and waits up to timeout for runner to return.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
	stop func(ctx context.Context) error,
) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	return run(ctx, logger, timeout, sigChan, runner, stop)
}

func run(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	signals <-chan os.Signal,
	runner func(ctx context.Context) error,
	stop func(ctx context.Context) error,
) error {
	if logger == nil {
		logger = slog.Default()
	}

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	select {
	case err := <-runDone:
		return err
	case sig := <-signals:
		logger.Info("received signal, initiating shutdown", "signal", sig)
	case <-ctx.Done():
		logger.Info("context done, initiating shutdown", "error", ctx.Err())
	}
	runCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := stop(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	select {
	case err := <-runDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded")
		return ErrTimeout
	}

	logger.Info("shutdown complete")
	return nil
}
