package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"UXTester/internal/domain"
	"UXTester/internal/registry"
)

type fakeAuditor struct {
	mu    sync.Mutex
	calls []string
	scan  func(url string) (domain.ScanResult, error)
}

func (f *fakeAuditor) Scan(_ context.Context, url string) (domain.ScanResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	return f.scan(url)
}

func (f *fakeAuditor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type capturedAlert struct {
	site     domain.MonitoredSite
	oldScore int
}

type fakeSink struct {
	mu     sync.Mutex
	alerts []capturedAlert
}

func (f *fakeSink) Notify(_ context.Context, site domain.MonitoredSite, oldScore int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, capturedAlert{site: site, oldScore: oldScore})
	return nil
}

type fakeHistory struct {
	mu      sync.Mutex
	records []domain.CheckRecord
}

func (f *fakeHistory) Record(_ context.Context, rec domain.CheckRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) Recent(context.Context, string, int) ([]domain.CheckRecord, error) {
	return nil, nil
}

func fixedResult(url string, score int) domain.ScanResult {
	return domain.ScanResult{URL: url, Score: score}
}

func findSite(t *testing.T, sites []domain.MonitoredSite, url string) domain.MonitoredSite {
	t.Helper()
	for _, s := range sites {
		if s.URL == url {
			return s
		}
	}
	t.Fatalf("site %s not found", url)
	return domain.MonitoredSite{}
}

func TestTickEmptyRegistryIsNoop(t *testing.T) {
	t.Parallel()

	auditor := &fakeAuditor{scan: func(url string) (domain.ScanResult, error) {
		return fixedResult(url, 90), nil
	}}
	s := NewScheduler(SchedulerDeps{Registry: registry.New(), Auditor: auditor})

	s.Tick(context.Background(), time.Now())

	if auditor.callCount() != 0 {
		t.Fatalf("empty tick must not scan, got %d calls", auditor.callCount())
	}
}

func TestTickUpdatesSites(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	if err := reg.Add("https://a.example"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	auditor := &fakeAuditor{scan: func(url string) (domain.ScanResult, error) {
		return fixedResult(url, 88), nil
	}}
	sink := &fakeSink{}
	s := NewScheduler(SchedulerDeps{Registry: reg, Auditor: auditor, Alerts: sink})

	s.Tick(context.Background(), time.Now())

	site := findSite(t, reg.List(), "https://a.example")
	if site.Score != 88 || site.Status != domain.StatusHealthy {
		t.Fatalf("unexpected record after tick: %+v", site)
	}
	if site.LastCheck == domain.NeverChecked {
		t.Fatal("LastCheck must be set after a successful check")
	}
	if len(sink.alerts) != 0 {
		t.Fatalf("no alert expected on first check, got %d", len(sink.alerts))
	}
}

func TestTickFailureIsolation(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	for _, url := range []string{"https://bad.example", "https://good.example"} {
		if err := reg.Add(url); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	reg.Update("https://bad.example", 75, domain.StatusHealthy, "2026-01-01 00:00:00")

	auditor := &fakeAuditor{scan: func(url string) (domain.ScanResult, error) {
		if url == "https://bad.example" {
			return domain.ScanResult{}, errors.New("engine exploded")
		}
		return fixedResult(url, 91), nil
	}}
	s := NewScheduler(SchedulerDeps{Registry: reg, Auditor: auditor})

	s.Tick(context.Background(), time.Now())

	bad := findSite(t, reg.List(), "https://bad.example")
	if bad.Status != domain.StatusError {
		t.Fatalf("failed site status = %s, want Error", bad.Status)
	}
	if bad.Score != 75 {
		t.Fatalf("failed site score changed: %d", bad.Score)
	}

	good := findSite(t, reg.List(), "https://good.example")
	if good.Score != 91 || good.Status != domain.StatusHealthy {
		t.Fatalf("healthy site not updated after sibling failure: %+v", good)
	}
}

func TestTickPanicIsolation(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	for _, url := range []string{"https://panic.example", "https://good.example"} {
		if err := reg.Add(url); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	auditor := &fakeAuditor{scan: func(url string) (domain.ScanResult, error) {
		if url == "https://panic.example" {
			panic("scan blew up")
		}
		return fixedResult(url, 84), nil
	}}
	s := NewScheduler(SchedulerDeps{Registry: reg, Auditor: auditor})

	s.Tick(context.Background(), time.Now())

	if status := findSite(t, reg.List(), "https://panic.example").Status; status != domain.StatusError {
		t.Fatalf("panicking site status = %s, want Error", status)
	}
	if score := findSite(t, reg.List(), "https://good.example").Score; score != 84 {
		t.Fatalf("sibling site not checked after panic, score = %d", score)
	}
}

func TestTickRaisesRegressionAlert(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	if err := reg.Add("https://a.example"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	reg.Update("https://a.example", 80, domain.StatusHealthy, "2026-01-01 00:00:00")

	auditor := &fakeAuditor{scan: func(url string) (domain.ScanResult, error) {
		return fixedResult(url, 60), nil
	}}
	sink := &fakeSink{}
	s := NewScheduler(SchedulerDeps{Registry: reg, Auditor: auditor, Alerts: sink})

	s.Tick(context.Background(), time.Now())

	if len(sink.alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(sink.alerts))
	}
	alert := sink.alerts[0]
	if alert.oldScore != 80 || alert.site.Score != 60 {
		t.Fatalf("unexpected alert payload: %+v", alert)
	}
	if alert.site.Status != domain.StatusWarning {
		t.Fatalf("alert status = %s, want Warning", alert.site.Status)
	}
}

func TestTickRemovedMidTickIsNotResurrected(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	if err := reg.Add("https://gone.example"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	auditor := &fakeAuditor{scan: func(url string) (domain.ScanResult, error) {
		// Simulates an API remove racing the in-flight scan.
		reg.Remove(url)
		return fixedResult(url, 95), nil
	}}
	history := &fakeHistory{}
	s := NewScheduler(SchedulerDeps{Registry: reg, Auditor: auditor, History: history})

	s.Tick(context.Background(), time.Now())

	if reg.Len() != 0 {
		t.Fatalf("removed site was resurrected: %+v", reg.List())
	}
	if len(history.records) != 0 {
		t.Fatalf("dropped result must not be archived, got %d records", len(history.records))
	}
}

func TestTickArchivesChecks(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	if err := reg.Add("https://a.example"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	auditor := &fakeAuditor{scan: func(url string) (domain.ScanResult, error) {
		return fixedResult(url, 73), nil
	}}
	history := &fakeHistory{}
	s := NewScheduler(SchedulerDeps{Registry: reg, Auditor: auditor, History: history})

	s.Tick(context.Background(), time.Now())

	if len(history.records) != 1 {
		t.Fatalf("expected 1 archived record, got %d", len(history.records))
	}
	rec := history.records[0]
	if rec.URL != "https://a.example" || rec.Score != 73 || rec.Status != domain.StatusHealthy {
		t.Fatalf("unexpected archived record: %+v", rec)
	}
}
