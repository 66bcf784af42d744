package etl

import (
	"context"
	"fmt"
	"sync"
	"time"

	applog "comstore/internal/log"
)

// Runner is what the scheduler drives once per tick.
type Runner interface {
	SyncCatalog(ctx context.Context) (Report, error)
}

// Scheduler runs catalog syncs on a fixed period, independent of request
// traffic. At most one run is in flight at a time; a tick that lands while
// a run is still going is dropped, not queued. A failed run is logged and
// never stops the schedule or the host process.
type Scheduler struct {
	interval time.Duration
	runner   Runner

	mu       sync.Mutex
	started  bool
	inFlight bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewScheduler(interval time.Duration, runner Runner) *Scheduler {
	return &Scheduler{interval: interval, runner: runner}
}

// Start launches the background loop. With triggerNow the first run fires
// immediately instead of waiting out the first interval. Calling Start on
// a started scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context, triggerNow bool) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx, triggerNow)

	applog.Info(nil, "sync.scheduler.started", map[string]any{"interval": s.interval.String()})
}

// Stop cancels the loop and waits for any in-flight run to wind down, or
// until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		applog.Info(nil, "sync.scheduler.stopped", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TriggerNow starts a run outside the schedule, subject to the same
// single-flight rule as timer fires.
func (s *Scheduler) TriggerNow(ctx context.Context) {
	s.trigger(ctx)
}

func (s *Scheduler) runLoop(ctx context.Context, triggerNow bool) {
	defer s.wg.Done()

	if triggerNow {
		s.trigger(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		applog.Info(nil, "sync.run.dropped", map[string]any{"reason": "previous run still in flight"})
		return
	}
	s.inFlight = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.inFlight = false
			s.mu.Unlock()
		}()
		defer func() {
			if rec := recover(); rec != nil {
				applog.Error(nil, "sync.run.panic", fmt.Errorf("%v", rec), nil)
			}
		}()

		rep, err := s.runner.SyncCatalog(ctx)
		if err != nil {
			// Wait for the next tick; no backoff, no inline retry.
			applog.Error(nil, "sync.run.failed", err, map[string]any{"run_id": rep.RunID})
			return
		}
		applog.Info(nil, "sync.run.done", map[string]any{
			"run_id":             rep.RunID,
			"categories_added":   rep.CategoriesAdded,
			"categories_skipped": rep.CategoriesSkipped,
			"products_added":     rep.ProductsAdded,
			"products_skipped":   rep.ProductsSkipped,
			"dimensions_added":   rep.DimensionsAdded,
			"images_added":       rep.ImagesAdded,
			"took_ms":            rep.Took.Milliseconds(),
		})
	}()
}
