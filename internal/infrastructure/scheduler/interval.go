package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"UXTester/internal/ports"
)

// IntervalDriver fires a job on a fixed interval using a cron runner. A new
// firing is skipped while the previous one is still running, so ticks never
// overlap.
type IntervalDriver struct {
	interval time.Duration

	mu     sync.Mutex
	runner *cron.Cron
}

var _ ports.Scheduler = (*IntervalDriver)(nil)

// NewIntervalDriver builds a driver for the given interval.
func NewIntervalDriver(interval time.Duration) *IntervalDriver {
	return &IntervalDriver{interval: interval}
}

// Start schedules the job every interval. Calling Start on a running driver is
// a no-op. The driver shuts itself down when ctx is cancelled.
func (d *IntervalDriver) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if d.interval <= 0 {
		return fmt.Errorf("scheduler: interval must be positive, got %s", d.interval)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.runner != nil {
		return nil
	}

	runner := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	spec := fmt.Sprintf("@every %s", d.interval)
	if _, err := runner.AddFunc(spec, func() { job(time.Now()) }); err != nil {
		return fmt.Errorf("scheduler: add job: %w", err)
	}

	runner.Start()
	d.runner = runner

	go func() {
		<-ctx.Done()
		_ = d.Stop(context.Background())
	}()

	return nil
}

// Stop halts the runner and waits for an in-flight job to finish, bounded by
// ctx.
func (d *IntervalDriver) Stop(ctx context.Context) error {
	d.mu.Lock()
	runner := d.runner
	d.runner = nil
	d.mu.Unlock()

	if runner == nil {
		return nil
	}

	done := runner.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
