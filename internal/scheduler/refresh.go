// Package scheduler reloads portfolio data on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/naka-gawa/gh-portfolio/internal/usecase"
)

// Loader performs one fetch attempt.
type Loader interface {
	Load(ctx context.Context) usecase.Result
}

// Refresher runs a Loader on a schedule
type Refresher struct {
	loader  Loader
	spec    string
	cron    *cron.Cron
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
	entryID cron.EntryID
}

// NewRefresher creates a refresher for spec, a standard cron expression or a
// descriptor such as "@every 1h". An empty spec disables refreshing.
func NewRefresher(loader Loader, spec string, logger *zap.Logger) *Refresher {
	return &Refresher{
		loader: loader,
		spec:   spec,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

// Start begins the schedule. Jobs run with ctx.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}
	if r.spec == "" {
		r.logger.Info("refresh disabled")
		return nil
	}

	entryID, err := r.cron.AddFunc(r.spec, func() {
		result := r.loader.Load(ctx)
		r.logger.Info("scheduled refresh finished",
			zap.Stringer("phase", result.Phase),
			zap.Time("next_run", r.NextRun()),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh %q: %w", r.spec, err)
	}

	r.entryID = entryID
	r.cron.Start()
	r.running = true

	r.logger.Info("refresh scheduled",
		zap.String("schedule", r.spec),
		zap.Time("next_run", r.cron.Entry(r.entryID).Next),
	)
	return nil
}

// Stop stops the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	stopped := r.cron.Stop()
	r.mu.Unlock()

	// A running job reads NextRun, so wait without holding the lock.
	<-stopped.Done()
	r.logger.Info("refresh stopped")
}

// NextRun returns the next scheduled run time, or the zero time when not running.
func (r *Refresher) NextRun() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return time.Time{}
	}
	return r.cron.Entry(r.entryID).Next
}
