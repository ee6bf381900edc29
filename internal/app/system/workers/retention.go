// internal/app/system/workers/retention.go
package workers

import (
	"context"
	"sync"
	"time"

	notificationstore "github.com/dalemusser/orghub/internal/app/store/notifications"
	"go.uber.org/zap"
)

// Retention is a background worker that purges read dashboard
// notifications past their retention window.
type Retention struct {
	inbox    *notificationstore.Store
	log      *zap.Logger
	interval time.Duration
	maxAge   time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewRetention creates a new notification retention worker.
//
// Parameters:
//   - inbox: the notifications store
//   - logger: zap logger for logging
//   - interval: how often to run the sweep (e.g., 1 hour)
//   - maxAge: how old a read notification must be before it is purged (e.g., 30 days)
func NewRetention(inbox *notificationstore.Store, logger *zap.Logger, interval, maxAge time.Duration) *Retention {
	return &Retention{
		inbox:    inbox,
		log:      logger,
		interval: interval,
		maxAge:   maxAge,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *Retention) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("notification retention worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("max_age", w.maxAge))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *Retention) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("notification retention worker stopped")
}

func (w *Retention) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *Retention) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-w.maxAge)
	count, err := w.inbox.PurgeReadOlderThan(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to purge read notifications", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("purged read notifications", zap.Int64("count", count))
	}
}
