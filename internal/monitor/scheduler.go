package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"UXTester/internal/domain"
	"UXTester/internal/ports"
	"UXTester/internal/registry"
)

const lastCheckLayout = "2006-01-02 15:04:05"

// SchedulerDeps wires the collaborators of the monitor loop.
type SchedulerDeps struct {
	Registry *registry.SiteRegistry
	Auditor  ports.Auditor
	Alerts   ports.AlertSink
	History  ports.CheckHistory
	Driver   ports.Scheduler
	Logger   *slog.Logger
}

// Scheduler re-audits every registered site once per tick. A tick snapshots
// the registry first, performs all blocking scan work without holding the
// registry lock, and reacquires it only per-record for the write-back. One
// site's failure never aborts the rest of the tick, and the registry write-back
// no-ops for sites removed mid-tick.
type Scheduler struct {
	registry *registry.SiteRegistry
	auditor  ports.Auditor
	alerts   ports.AlertSink
	history  ports.CheckHistory
	driver   ports.Scheduler
	logger   *slog.Logger
	now      func() time.Time
}

// NewScheduler constructs the monitor loop from its dependencies.
func NewScheduler(deps SchedulerDeps) *Scheduler {
	return &Scheduler{
		registry: deps.Registry,
		auditor:  deps.Auditor,
		alerts:   deps.Alerts,
		history:  deps.History,
		driver:   deps.Driver,
		logger:   deps.Logger,
		now:      time.Now,
	}
}

// WithClock overrides the write-back timestamp source.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Start registers the tick with the interval driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil {
		return fmt.Errorf("monitor: no scheduler driver configured")
	}

	return s.driver.Start(ctx, func(t time.Time) {
		s.Tick(ctx, t)
	})
}

// Stop tears down the interval driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}

// Tick checks every site registered at its start. Exported so the API layer
// and tests can run a check cycle on demand.
func (s *Scheduler) Tick(ctx context.Context, trigger time.Time) {
	sites := s.registry.List()
	if len(sites) == 0 {
		return
	}

	s.debug("monitor tick", "sites", len(sites), "trigger", trigger.Format(lastCheckLayout))

	for _, site := range sites {
		s.checkSite(ctx, site)
	}
}

func (s *Scheduler) checkSite(ctx context.Context, site domain.MonitoredSite) {
	defer func() {
		if rec := recover(); rec != nil {
			s.warn("check panicked", "url", site.URL, "panic", rec)
			s.registry.MarkError(site.URL)
		}
	}()

	result, err := s.auditor.Scan(ctx, site.URL)
	checkedAt := s.now()

	if err != nil {
		s.warn("check failed", "url", site.URL, "error", err)
		s.registry.MarkError(site.URL)
		s.archive(ctx, domain.CheckRecord{
			URL:       site.URL,
			Score:     site.Score,
			Status:    domain.StatusError,
			CheckedAt: checkedAt,
		})
		return
	}

	status, alert := Evaluate(site.Score, result.Score)

	updated := s.registry.Update(site.URL, result.Score, status, checkedAt.Format(lastCheckLayout))
	if !updated {
		// Removed while the scan was in flight; drop the result.
		s.debug("site removed mid-tick", "url", site.URL)
		return
	}

	s.archive(ctx, domain.CheckRecord{
		URL:       site.URL,
		Score:     result.Score,
		Status:    status,
		CheckedAt: checkedAt,
	})

	if alert && s.alerts != nil {
		current := domain.MonitoredSite{
			URL:       site.URL,
			Score:     result.Score,
			Status:    status,
			LastCheck: checkedAt.Format(lastCheckLayout),
		}
		if err := s.alerts.Notify(ctx, current, site.Score); err != nil {
			s.warn("alert delivery failed", "url", site.URL, "error", err)
		}
	}
}

func (s *Scheduler) archive(ctx context.Context, rec domain.CheckRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, rec); err != nil {
		s.warn("history write failed", "url", rec.URL, "error", err)
	}
}

func (s *Scheduler) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Scheduler) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
