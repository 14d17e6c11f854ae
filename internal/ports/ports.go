package ports

import (
	"context"
	"time"

	"UXTester/internal/domain"
)

// Auditor turns a URL into a structured audit report.
type Auditor interface {
	Scan(ctx context.Context, url string) (domain.ScanResult, error)
}

// NarrativeGenerator produces human-readable report text from a prompt.
// Callers must treat failures as recoverable and substitute their own fallback.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TitleProbe fetches a lightweight page detail for report enrichment.
// Any error means the detail is simply omitted.
type TitleProbe interface {
	Title(ctx context.Context, url string) (string, error)
}

// AlertSink receives advisory regression alerts raised by the monitor.
type AlertSink interface {
	Notify(ctx context.Context, site domain.MonitoredSite, oldScore int) error
}

// CheckHistory archives scheduled-check observations for later inspection.
type CheckHistory interface {
	Record(ctx context.Context, rec domain.CheckRecord) error
	Recent(ctx context.Context, url string, limit int) ([]domain.CheckRecord, error)
}

// Gate validates a presented API credential before scan/fix operations.
type Gate interface {
	Authorize(credential string) bool
}

// Scheduler controls when the monitor tick executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
