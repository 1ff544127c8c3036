// Package worker runs background jobs as a delivery alongside the API server.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"saasadmin/config"
	"saasadmin/internal/delivery"
	"saasadmin/internal/domain/lifecycle"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultCleanupInterval = time.Hour

type cleanupWorker struct {
	logger    *slog.Logger
	cleanupUC usecase.TokenCleanupUsecase
	enabled   bool
	interval  time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// ServerParams holds dependencies for the cleanup worker
type ServerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	CleanupUC usecase.TokenCleanupUsecase
}

// NewServer creates the worker that periodically purges expired refresh tokens.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	w := &cleanupWorker{
		logger:    params.Logger,
		cleanupUC: params.CleanupUC,
		interval:  defaultCleanupInterval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	if tc := params.Cfg.TokenCleanup; tc != nil {
		w.enabled = tc.Enabled
		if tc.Interval > 0 {
			w.interval = tc.Interval
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: w.stop,
	})

	return w, nil
}

// Serve purges once immediately and then on every tick until stopped.
func (w *cleanupWorker) Serve(ctx context.Context) error {
	defer close(w.doneCh)

	if !w.enabled {
		w.logger.Info("Refresh token cleanup disabled")

		return nil
	}

	w.logger.Info("Starting refresh token cleanup worker", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.purge(ctx)

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-w.stopCh:
			return nil
		case <-ticker.C:
		}
	}
}

func (w *cleanupWorker) purge(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if _, err := w.cleanupUC.PurgeExpired(runCtx); err != nil {
		// The next tick retries.
		w.logger.Error("Refresh token cleanup failed", slog.Any("error", err))
	}
}

// stop signals Serve and waits for the in-flight purge to finish.
func (w *cleanupWorker) stop(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.stopCh) })

	if !w.enabled {
		return nil
	}

	w.logger.Info("Shutting down refresh token cleanup worker")

	select {
	case <-w.doneCh:
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}
